// Package testutil provides common test helpers for the vew project.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
)

// TempConfigFile creates a temporary config.toml with the given content
// and returns its path. The file is automatically cleaned up.
func TempConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("TempConfigFile: write failed: %v", err)
	}

	return path
}

// TempRoot creates a temporary environments root containing one directory
// (with an empty bin/) per name. Returns the root path.
func TempRoot(t *testing.T, names ...string) string {
	t.Helper()

	root := t.TempDir()
	for _, name := range names {
		MakeEnv(t, root, name)
	}
	return root
}

// MakeEnv creates <root>/<name>/bin and returns the environment path.
func MakeEnv(t *testing.T, root, name string) string {
	t.Helper()

	dir := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Join(dir, "bin"), 0755); err != nil {
		t.Fatalf("MakeEnv: mkdir failed: %v", err)
	}
	return dir
}

// NewSession returns a session rooted at root with a fixed PATH and HOME.
func NewSession(t *testing.T, root string) *session.State {
	t.Helper()

	s := session.New(t.TempDir())
	s.Setenv("HOME", t.TempDir())
	s.Setenv("PATH", strings.Join([]string{"/usr/local/bin", "/usr/bin", "/bin"}, string(os.PathListSeparator)))
	if root != "" {
		s.Setenv("WORKON_HOME", root)
	}
	return s
}

// ReadFile reads path or fails the test.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	return string(data)
}

// HookFunc emulates a sourced hook script.
type HookFunc func(s *session.State, out io.Writer) error

// FakeRunner runs hooks as Go functions keyed by script base name without
// extension (e.g. "activate"). Scripts without a function are no-ops.
type FakeRunner struct {
	Funcs map[string]HookFunc
	// Ran records the script paths passed to Run, in order.
	Ran []string
}

// NewFakeRunner returns a FakeRunner that emulates the generated activate
// script.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{Funcs: map[string]HookFunc{"activate": EmulateActivate}}
}

// On registers fn for the hook named name.
func (r *FakeRunner) On(name string, fn HookFunc) {
	r.Funcs[name] = fn
}

// Run applies the registered function to a copy of s. A *hooks.StatusError
// from the function keeps the copy, as the shell runner does.
func (r *FakeRunner) Run(_ context.Context, script string, s *session.State, out io.Writer) (*session.State, error) {
	r.Ran = append(r.Ran, script)

	next := s.Clone()
	name := strings.TrimSuffix(filepath.Base(script), filepath.Ext(script))
	fn, ok := r.Funcs[name]
	if !ok {
		return next, nil
	}
	if err := fn(next, out); err != nil {
		var status *hooks.StatusError
		if errors.As(err, &status) {
			return next, err
		}
		return nil, fmt.Errorf("%s: %w", filepath.Base(script), err)
	}
	return next, nil
}

// RanHooks returns the base names (without extension) of the hooks run.
func (r *FakeRunner) RanHooks() []string {
	names := make([]string, 0, len(r.Ran))
	for _, script := range r.Ran {
		names = append(names, strings.TrimSuffix(filepath.Base(script), filepath.Ext(script)))
	}
	return names
}

// EmulateActivate does what the generated activate script does, reading the
// prompt label from the script itself.
func EmulateActivate(s *session.State, _ io.Writer) error {
	env := s.Getenv("VIRTUAL_ENV")
	if env == "" {
		return fmt.Errorf("VIRTUAL_ENV not set")
	}
	bin := filepath.Join(env, "bin")
	ext := ".sh"

	prompt := filepath.Base(env)
	if data, err := os.ReadFile(filepath.Join(bin, "activate"+ext)); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			if v, ok := strings.CutPrefix(line, "VIRTUAL_ENV_PROMPT="); ok {
				prompt = strings.Trim(v, "'")
			}
		}
	}

	s.Setenv("VIRTUAL_ENV_PROMPT", prompt)
	s.PrependPath(bin)
	if v, ok := s.LookupEnv("PYTHONHOME"); ok {
		s.Setenv("_OLD_VIRTUAL_PYTHONHOME", v)
		s.Unsetenv("PYTHONHOME")
	}
	s.Register(session.Command{
		Name:  session.DeactivateCommand,
		Hooks: []string{filepath.Join(bin, "predeactivate"+ext), filepath.Join(bin, "postdeactivate"+ext)},
	})
	return nil
}
