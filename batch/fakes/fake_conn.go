package fakes

type FakeConn struct {
	ExecStatements []string
	ExecErrors     map[string]error

	CommitCallCount int
	CommitError     error

	RollbackCallCount int
	RollbackError     error
}

func (f *FakeConn) Exec(statement string) error {
	f.ExecStatements = append(f.ExecStatements, statement)

	if f.ExecErrors != nil {
		if err, ok := f.ExecErrors[statement]; ok {
			return err
		}
	}

	return nil
}

func (f *FakeConn) Commit() error {
	f.CommitCallCount++

	return f.CommitError
}

func (f *FakeConn) Rollback() error {
	f.RollbackCallCount++

	return f.RollbackError
}
