package batch

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/lager/v3"
)

// Conn is the transactional surface an executor needs: execute a
// statement, then commit or roll back the lot.
type Conn interface {
	Exec(statement string) error
	Commit() error
	Rollback() error
}

// Split breaks a SQL script into individual statements on the ';'
// delimiter, trimming whitespace and dropping empty fragments. Statement
// order is preserved.
//
// Splitting is naive: a ';' inside a string literal, a comment, or a
// procedural body (e.g. a function definition) is treated as a statement
// boundary. Scripts containing such statements must be executed through a
// driver-native multi-statement path instead.
func Split(sqlText string) []string {
	statements := []string{}
	for _, fragment := range strings.Split(sqlText, ";") {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}
		statements = append(statements, fragment)
	}

	return statements
}

// StatementError reports the statement that aborted a batch. Index is the
// 0-based position within the split script, or -1 when the failure
// happened at commit rather than at a statement.
type StatementError struct {
	Index     int
	Statement string
	Message   string
}

func (e *StatementError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("commit failed: %s", e.Message)
	}

	return fmt.Sprintf("statement %d failed: %s", e.Index, e.Message)
}

// Outcome is the result of executing one batch. Err is nil when every
// statement was applied and the transaction committed.
type Outcome struct {
	Executed int
	Err      *StatementError
}

// Success reports whether the whole batch was applied.
func (o Outcome) Success() bool {
	return o.Err == nil
}

type Executor struct {
	logger lager.Logger
}

func NewExecutor(logger lager.Logger) *Executor {
	return &Executor{
		logger: logger.Session("batch-executor"),
	}
}

// Execute splits sqlText and runs the statements strictly in order
// against conn. The batch is all-or-nothing: on the first statement
// error, remaining statements are skipped, the transaction is rolled
// back, and the failing index is reported. On full success the
// transaction is committed. An empty script commits without executing
// anything.
func (e *Executor) Execute(conn Conn, sqlText string) Outcome {
	statements := Split(sqlText)

	for i, statement := range statements {
		e.logger.Debug("execute-statement", lager.Data{"index": i, "statement": truncate(statement, 80)})

		if err := conn.Exec(statement); err != nil {
			e.logger.Error("sql-error", err, lager.Data{"index": i})
			if rollbackErr := conn.Rollback(); rollbackErr != nil {
				e.logger.Error("rollback-error", rollbackErr)
			}
			return Outcome{
				Executed: i + 1,
				Err: &StatementError{
					Index:     i,
					Statement: statement,
					Message:   err.Error(),
				},
			}
		}
	}

	if err := conn.Commit(); err != nil {
		e.logger.Error("commit-error", err)
		if rollbackErr := conn.Rollback(); rollbackErr != nil {
			e.logger.Error("rollback-error", rollbackErr)
		}
		return Outcome{
			Executed: len(statements),
			Err: &StatementError{
				Index:   -1,
				Message: err.Error(),
			},
		}
	}

	e.logger.Debug("batch-committed", lager.Data{"statements": len(statements)})

	return Outcome{Executed: len(statements)}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
