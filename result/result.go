package result

import (
	"database/sql"
	"fmt"
	"strings"
)

// Row maps a column name to its value for a single result row.
type Row map[string]any

// Set holds a rectangular query result: column names in the order the
// database returned them, plus the rows. A Set is built once, never
// modified, and handed to a renderer.
type Set struct {
	Columns []string
	Rows    []Row
}

// FromRows drains rows into a Set. []byte values are converted to string
// so MySQL text columns render the same as PostgreSQL ones. The caller
// remains responsible for closing rows.
func FromRows(rows *sql.Rows) (*Set, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	set := &Set{Columns: columns, Rows: []Row{}}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}

		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}

		row := Row{}
		for i, column := range columns {
			if b, ok := values[i].([]byte); ok {
				row[column] = string(b)
			} else {
				row[column] = values[i]
			}
		}
		set.Rows = append(set.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return set, nil
}

// Empty reports whether the set has no rows.
func (s *Set) Empty() bool {
	return len(s.Rows) == 0
}

func cellString(value any) string {
	if value == nil {
		return ""
	}
	return fmt.Sprint(value)
}

func renderTable(set *Set) string {
	if set.Empty() {
		return ""
	}

	widths := make([]int, len(set.Columns))
	for i, column := range set.Columns {
		widths[i] = len(column)
	}
	for _, row := range set.Rows {
		for i, column := range set.Columns {
			if l := len(cellString(row[column])); l > widths[i] {
				widths[i] = l
			}
		}
	}

	pad := func(cells []string) string {
		padded := make([]string, len(cells))
		for i, cell := range cells {
			padded[i] = cell + strings.Repeat(" ", widths[i]-len(cell))
		}
		return strings.Join(padded, " | ")
	}

	headerLine := pad(set.Columns)

	var b strings.Builder
	b.WriteString(headerLine)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("-", len(headerLine)))
	b.WriteString("\n")

	for _, row := range set.Rows {
		cells := make([]string, len(set.Columns))
		for i, column := range set.Columns {
			cells[i] = cellString(row[column])
		}
		b.WriteString(pad(cells))
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\n%d row(s) returned\n", len(set.Rows)))

	return b.String()
}
