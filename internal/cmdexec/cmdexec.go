// Package cmdexec abstracts external command execution for testability.
// Production code uses Commander interface; tests inject FakeCommander from testutil.
package cmdexec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Options controls the process environment and stdio of a command.
// A nil Env inherits the current process environment.
type Options struct {
	Env    []string
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
}

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// Output executes an external command and returns its stdout.
	// Stderr is streamed to opts.Stderr.
	Output(ctx context.Context, opts Options, name string, args ...string) ([]byte, error)

	// RunInteractive executes an external command with stdin attached and
	// stdout/stderr streamed to opts.
	RunInteractive(ctx context.Context, opts Options, name string, args ...string) error
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct{}

var _ Commander = (*RealCommander)(nil)

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Output executes the command and captures stdout only.
func (c *RealCommander) Output(ctx context.Context, opts Options, name string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := command(ctx, opts, name, args...)
	cmd.Stdout = &stdout
	err := cmd.Run()
	return stdout.Bytes(), err
}

// RunInteractive executes the command with stdin attached.
func (c *RealCommander) RunInteractive(ctx context.Context, opts Options, name string, args ...string) error {
	cmd := command(ctx, opts, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = writerOr(opts.Stdout, os.Stdout)
	return cmd.Run()
}

func command(ctx context.Context, opts Options, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = opts.Env
	cmd.Dir = opts.Dir
	cmd.Stderr = writerOr(opts.Stderr, os.Stderr)
	return cmd
}

func writerOr(w, fallback io.Writer) io.Writer {
	if w == nil {
		return fallback
	}
	return w
}

// ExitError wraps a failed command with its captured error text.
type ExitError struct {
	Name string
	Code int
	Text string
}

func (e *ExitError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("%s: exit status %d", e.Name, e.Code)
	}
	return fmt.Sprintf("%s: exit status %d: %s", e.Name, e.Code, e.Text)
}

// ExitCode extracts the exit code of a finished command. It returns -1 when
// err does not come from a process that ran to completion.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		return ee.ExitCode()
	}
	var xe *ExitError
	if errors.As(err, &xe) {
		return xe.Code
	}
	return -1
}
