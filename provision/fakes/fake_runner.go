package fakes

import "strings"

type FakeRunner struct {
	RunCommands []string
	RunErrors   map[string]error

	OutputCommands []string
	OutputOutput   string
	OutputError    error

	RunWithInputCalled  bool
	RunWithInputInput   string
	RunWithInputCommand string
	RunWithInputOutput  string
	RunWithInputError   error
}

func (f *FakeRunner) Run(name string, args ...string) error {
	command := commandLine(name, args)
	f.RunCommands = append(f.RunCommands, command)

	if f.RunErrors != nil {
		if err, ok := f.RunErrors[command]; ok {
			return err
		}
	}

	return nil
}

func (f *FakeRunner) Output(name string, args ...string) (string, error) {
	f.OutputCommands = append(f.OutputCommands, commandLine(name, args))

	return f.OutputOutput, f.OutputError
}

func (f *FakeRunner) RunWithInput(input string, name string, args ...string) (string, error) {
	f.RunWithInputCalled = true
	f.RunWithInputInput = input
	f.RunWithInputCommand = commandLine(name, args)

	return f.RunWithInputOutput, f.RunWithInputError
}

func commandLine(name string, args []string) string {
	return strings.Join(append([]string{name}, args...), " ")
}
