package sqlengine

import (
	"database/sql"

	"github.com/sqladmin-community/sqladmin/batch"
	"github.com/sqladmin-community/sqladmin/result"
)

type SQLEngine interface {
	Open(address string, port int64, dbname string, username string, password string) error
	Close()
	Begin() (batch.Conn, error)
	Exec(statement string) error
	Query(query string) (*result.Set, error)
	ListTables() ([]string, error)
	DescribeTable(table string) (*result.Set, error)
	URI(address string, port int64, dbname string, username string, password string) string
	JDBCURI(address string, port int64, dbname string, username string, password string) string
}

// txConn adapts *sql.Tx to the batch executor's connection surface.
type txConn struct {
	tx *sql.Tx
}

func (c *txConn) Exec(statement string) error {
	_, err := c.tx.Exec(statement)
	return err
}

func (c *txConn) Commit() error {
	return c.tx.Commit()
}

func (c *txConn) Rollback() error {
	return c.tx.Rollback()
}
