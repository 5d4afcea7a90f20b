package provision

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes external commands. It exists so provisioning can be
// tested without touching the host.
type Runner interface {
	Run(name string, args ...string) error
	Output(name string, args ...string) (string, error)
	RunWithInput(input string, name string, args ...string) (string, error)
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

func (r *ExecRunner) Run(name string, args ...string) error {
	cmd := exec.Command(name, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("Command failed: %s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}

	return nil
}

func (r *ExecRunner) Output(name string, args ...string) (string, error) {
	out, err := exec.Command(name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

func (r *ExecRunner) RunWithInput(input string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(input)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.String(), fmt.Errorf("Command failed: %s %s: %s", name, strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}

	return stdout.String(), nil
}
