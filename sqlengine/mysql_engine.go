package sqlengine

import (
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql" // MySQL Driver

	"code.cloudfoundry.org/lager/v3"

	"github.com/sqladmin-community/sqladmin/batch"
	"github.com/sqladmin-community/sqladmin/result"
)

type MySQLEngine struct {
	logger lager.Logger
	db     *sql.DB
}

func NewMySQLEngine(logger lager.Logger) *MySQLEngine {
	return &MySQLEngine{
		logger: logger.Session("mysql-engine"),
	}
}

func (d *MySQLEngine) Open(address string, port int64, dbname string, username string, password string) error {
	connectionString := d.connectionString(address, port, dbname, username, password)
	d.logger.Debug("sql-open", lager.Data{"connection-string": connectionString})

	db, err := sql.Open("mysql", connectionString)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}

	d.db = db

	return nil
}

func (d *MySQLEngine) Close() {
	if d.db != nil {
		d.db.Close()
	}
}

func (d *MySQLEngine) Begin() (batch.Conn, error) {
	d.logger.Debug("sql-begin")

	tx, err := d.db.Begin()
	if err != nil {
		d.logger.Error("sql-error", err)
		return nil, err
	}

	return &txConn{tx: tx}, nil
}

func (d *MySQLEngine) Exec(statement string) error {
	d.logger.Debug("sql-exec", lager.Data{"statement": statement})

	if _, err := d.db.Exec(statement); err != nil {
		d.logger.Error("sql-error", err)
		return err
	}

	return nil
}

func (d *MySQLEngine) Query(query string) (*result.Set, error) {
	d.logger.Debug("sql-query", lager.Data{"query": query})

	rows, err := d.db.Query(query)
	if err != nil {
		d.logger.Error("sql-error", err)
		return nil, err
	}
	defer rows.Close()

	set, err := result.FromRows(rows)
	if err != nil {
		d.logger.Error("sql-error", err)
		return nil, err
	}

	return set, nil
}

func (d *MySQLEngine) ListTables() ([]string, error) {
	showTablesStatement := "SHOW TABLES"
	d.logger.Debug("list-tables", lager.Data{"statement": showTablesStatement})

	tables := []string{}

	rows, err := d.db.Query(showTablesStatement)
	if err != nil {
		d.logger.Error("sql-error", err)
		return tables, err
	}
	defer rows.Close()

	var table string
	for rows.Next() {
		if err := rows.Scan(&table); err != nil {
			d.logger.Error("sql-error", err)
			return tables, err
		}
		tables = append(tables, table)
	}
	if err := rows.Err(); err != nil {
		d.logger.Error("sql-error", err)
		return tables, err
	}

	return tables, nil
}

func (d *MySQLEngine) DescribeTable(table string) (*result.Set, error) {
	describeTableStatement := "DESCRIBE " + table
	d.logger.Debug("describe-table", lager.Data{"statement": describeTableStatement})

	return d.Query(describeTableStatement)
}

func (d *MySQLEngine) URI(address string, port int64, dbname string, username string, password string) string {
	return fmt.Sprintf("mysql://%s:%s@%s:%d/%s?reconnect=true", username, password, address, port, dbname)
}

func (d *MySQLEngine) JDBCURI(address string, port int64, dbname string, username string, password string) string {
	return fmt.Sprintf("jdbc:mysql://%s:%d/%s?user=%s&password=%s", address, port, dbname, username, password)
}

func (d *MySQLEngine) connectionString(address string, port int64, dbname string, username string, password string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s", username, password, address, port, dbname)
}
