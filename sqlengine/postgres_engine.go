package sqlengine

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL Driver

	"code.cloudfoundry.org/lager/v3"

	"github.com/sqladmin-community/sqladmin/batch"
	"github.com/sqladmin-community/sqladmin/result"
)

type PostgresEngine struct {
	logger lager.Logger
	db     *sql.DB
}

func NewPostgresEngine(logger lager.Logger) *PostgresEngine {
	return &PostgresEngine{
		logger: logger.Session("postgres-engine"),
	}
}

func (d *PostgresEngine) Open(address string, port int64, dbname string, username string, password string) error {
	connectionString := d.connectionString(address, port, dbname, username, password)
	d.logger.Debug("sql-open", lager.Data{"connection-string": connectionString})

	db, err := sql.Open("postgres", connectionString)
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

func (d *PostgresEngine) Close() {
	if d.db != nil {
		d.db.Close()
	}
}

func (d *PostgresEngine) Begin() (batch.Conn, error) {
	d.logger.Debug("sql-begin")

	tx, err := d.db.Begin()
	if err != nil {
		d.logger.Error("sql-error", err)
		return nil, err
	}

	return &txConn{tx: tx}, nil
}

func (d *PostgresEngine) Exec(statement string) error {
	d.logger.Debug("sql-exec", lager.Data{"statement": statement})

	if _, err := d.db.Exec(statement); err != nil {
		d.logger.Error("sql-error", err)
		return err
	}

	return nil
}

func (d *PostgresEngine) Query(query string) (*result.Set, error) {
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

func (d *PostgresEngine) ListTables() ([]string, error) {
	selectTablesStatement := "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' AND table_type = 'BASE TABLE' ORDER BY table_name"
	d.logger.Debug("list-tables", lager.Data{"statement": selectTablesStatement})

	tables := []string{}

	rows, err := d.db.Query(selectTablesStatement)
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

func (d *PostgresEngine) DescribeTable(table string) (*result.Set, error) {
	describeTableStatement := "SELECT column_name, data_type, character_maximum_length, is_nullable, column_default " +
		"FROM information_schema.columns WHERE table_name = '" + table + "' ORDER BY ordinal_position"
	d.logger.Debug("describe-table", lager.Data{"statement": describeTableStatement})

	return d.Query(describeTableStatement)
}

func (d *PostgresEngine) URI(address string, port int64, dbname string, username string, password string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?reconnect=true", username, password, address, port, dbname)
}

func (d *PostgresEngine) JDBCURI(address string, port int64, dbname string, username string, password string) string {
	return fmt.Sprintf("jdbc:postgresql://%s:%d/%s?user=%s&password=%s", address, port, dbname, username, password)
}

func (d *PostgresEngine) connectionString(address string, port int64, dbname string, username string, password string) string {
	return fmt.Sprintf("host=%s port=%d dbname=%s user='%s' password='%s'", address, port, dbname, username, password)
}
