package fakes

import (
	"fmt"

	"github.com/sqladmin-community/sqladmin/batch"
	"github.com/sqladmin-community/sqladmin/result"
)

type FakeSQLEngine struct {
	OpenCalled   bool
	OpenAddress  string
	OpenPort     int64
	OpenDBName   string
	OpenUsername string
	OpenPassword string
	OpenError    error

	CloseCalled bool

	BeginCalled bool
	BeginConn   batch.Conn
	BeginError  error

	ExecCalled    bool
	ExecStatement string
	ExecError     error

	QueryCalled bool
	QueryQuery  string
	QuerySet    *result.Set
	QueryError  error

	ListTablesCalled bool
	ListTablesTables []string
	ListTablesError  error

	DescribeTableCalled bool
	DescribeTableTable  string
	DescribeTableSet    *result.Set
	DescribeTableError  error

	URICalled   bool
	URIAddress  string
	URIPort     int64
	URIDBName   string
	URIUsername string
	URIPassword string

	JDBCURICalled   bool
	JDBCURIAddress  string
	JDBCURIPort     int64
	JDBCURIDBName   string
	JDBCURIUsername string
	JDBCURIPassword string
}

func (f *FakeSQLEngine) Open(address string, port int64, dbname string, username string, password string) error {
	f.OpenCalled = true
	f.OpenAddress = address
	f.OpenPort = port
	f.OpenDBName = dbname
	f.OpenUsername = username
	f.OpenPassword = password

	return f.OpenError
}

func (f *FakeSQLEngine) Close() {
	f.CloseCalled = true
}

func (f *FakeSQLEngine) Begin() (batch.Conn, error) {
	f.BeginCalled = true

	return f.BeginConn, f.BeginError
}

func (f *FakeSQLEngine) Exec(statement string) error {
	f.ExecCalled = true
	f.ExecStatement = statement

	return f.ExecError
}

func (f *FakeSQLEngine) Query(query string) (*result.Set, error) {
	f.QueryCalled = true
	f.QueryQuery = query

	return f.QuerySet, f.QueryError
}

func (f *FakeSQLEngine) ListTables() ([]string, error) {
	f.ListTablesCalled = true

	return f.ListTablesTables, f.ListTablesError
}

func (f *FakeSQLEngine) DescribeTable(table string) (*result.Set, error) {
	f.DescribeTableCalled = true
	f.DescribeTableTable = table

	return f.DescribeTableSet, f.DescribeTableError
}

func (f *FakeSQLEngine) URI(address string, port int64, dbname string, username string, password string) string {
	f.URICalled = true
	f.URIAddress = address
	f.URIPort = port
	f.URIDBName = dbname
	f.URIUsername = username
	f.URIPassword = password

	return fmt.Sprintf("fake://%s:%s@%s:%d/%s", username, password, address, port, dbname)
}

func (f *FakeSQLEngine) JDBCURI(address string, port int64, dbname string, username string, password string) string {
	f.JDBCURICalled = true
	f.JDBCURIAddress = address
	f.JDBCURIPort = port
	f.JDBCURIDBName = dbname
	f.JDBCURIUsername = username
	f.JDBCURIPassword = password

	return fmt.Sprintf("jdbc:fake://%s:%s@%s:%d/%s", username, password, address, port, dbname)
}
