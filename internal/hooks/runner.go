package hooks

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/session"
)

// Runner sources a hook script against a session and returns the session
// the script leaves behind. s is not modified. A *StatusError comes with a
// usable session; any other error comes with nil.
type Runner interface {
	Run(ctx context.Context, script string, s *session.State, out io.Writer) (*session.State, error)
}

// sourceScript sources $1 with its stdout folded into stderr, then execs
// the dump command in the same process so the dump sees the hook's changes.
// The hook's status travels in statusKey.
const sourceScript = `. "$1" 1>&2; ` + statusKey + `=$?; export ` + statusKey + `; shift; exec "$@"`

const statusKey = "VEW_HOOK_STATUS"

// volatile variables are maintained by the hook shell itself.
var volatile = []string{"PWD", "OLDPWD", "SHLVL", "_", statusKey}

// StatusError reports a hook whose last command returned nonzero. The
// changes the hook made are kept, as a sourced script's would be.
type StatusError struct {
	Script string
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: exit status %s", e.Script, e.Status)
}

// ShellRunner sources hooks in a POSIX shell.
type ShellRunner struct {
	Commander cmdexec.Commander
	// Shell is the argv prefix of the hook shell, e.g. ["sh"].
	Shell []string
	// Dump prints the environment in the WriteDump format.
	Dump []string
}

var _ Runner = (*ShellRunner)(nil)

// Run sources script and reads back the resulting environment.
func (r *ShellRunner) Run(ctx context.Context, script string, s *session.State, out io.Writer) (*session.State, error) {
	if len(r.Shell) == 0 || len(r.Dump) == 0 {
		return nil, fmt.Errorf("hooks.Run: runner not configured")
	}

	args := append([]string{}, r.Shell[1:]...)
	args = append(args, "-c", sourceScript, "vew-hook", script)
	args = append(args, r.Dump...)

	stdout, err := r.Commander.Output(ctx, cmdexec.Options{
		Env:    s.Environ(),
		Dir:    s.Dir,
		Stderr: out,
	}, r.Shell[0], args...)
	if err != nil {
		return nil, fmt.Errorf("hooks.Run: %s: %w", filepath.Base(script), err)
	}

	env, dir, err := ParseDump(stdout)
	if err != nil {
		return nil, fmt.Errorf("hooks.Run: %s: %w", filepath.Base(script), err)
	}

	status := env[statusKey]

	next := session.New(dir)
	for k, v := range env {
		next.Env[k] = v
	}
	for _, k := range volatile {
		delete(next.Env, k)
		if v, ok := s.Env[k]; ok {
			next.Env[k] = v
		}
	}
	// names the dump cannot carry pass through unchanged
	for k, v := range s.Env {
		if !ValidName(k) {
			next.Env[k] = v
		}
	}
	if status != "" && status != "0" {
		return next, &StatusError{Script: filepath.Base(script), Status: status}
	}
	return next, nil
}
