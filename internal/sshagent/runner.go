package sshagent

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// Command describes a subprocess invocation. A nil Env inherits the parent environment.
type Command struct {
	Name  string
	Args  []string
	Env   []string
	Stdin io.Reader
}

// Runner executes commands. It exists so agent interactions can be mocked.
//
//go:generate mockery --name=Runner --output=./mocks
type Runner interface {
	// Execute runs cmd to completion and returns its stdout and stderr.
	// A non-zero exit is reported as an error.
	Execute(ctx context.Context, cmd Command) (stdout []byte, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Execute runs an actual subprocess.
func (ExecRunner) Execute(ctx context.Context, c Command) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Env != nil {
		cmd.Env = c.Env
	}
	cmd.Stdin = c.Stdin

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}
