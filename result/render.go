package result

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Format selects the output produced by Render.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a format name from a flag value.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	}

	return "", fmt.Errorf("Output format '%s' not supported", name)
}

// Render produces the textual representation of a set. Rendering never
// fails; an empty set renders as an empty string in table mode and as an
// empty JSON array in json mode.
func Render(set *Set, format Format) string {
	if format == FormatJSON {
		return renderJSON(set)
	}

	return renderTable(set)
}

// orderedRow serializes a Row with keys in column order rather than the
// map iteration order encoding/json would use.
type orderedRow struct {
	columns []string
	row     Row
}

func (o orderedRow) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, column := range o.columns {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(column)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteByte(':')
		value, err := marshalValue(o.row[column])
		if err != nil {
			return nil, err
		}
		b.Write(value)
	}
	b.WriteByte('}')

	return b.Bytes(), nil
}

// marshalValue keeps primitive driver values as JSON primitives and
// falls back to the string form for anything else, timestamps included.
func marshalValue(value any) ([]byte, error) {
	switch value.(type) {
	case nil, bool, string, int, int32, int64, uint32, uint64, float32, float64:
		return json.Marshal(value)
	}

	return json.Marshal(fmt.Sprint(value))
}

func renderJSON(set *Set) string {
	rows := make([]orderedRow, 0, len(set.Rows))
	for _, row := range set.Rows {
		rows = append(rows, orderedRow{columns: set.Columns, row: row})
	}

	out, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		// marshalValue reduces every value to a JSON primitive first,
		// so this path is unreachable for a well-formed set.
		return "[]"
	}

	return string(out)
}
