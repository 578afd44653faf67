package venv_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/testutil"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivate(t *testing.T) {
	f := newFixture(t, "foo")

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))

	assert.Equal(t, f.env("foo"), f.s.Getenv(venv.VirtualEnvVar))
	assert.Equal(t, "foo", f.s.Getenv(venv.PromptVar))
	assert.Equal(t, filepath.Join(f.env("foo"), "bin"), f.s.PathList()[0])
	assert.True(t, f.s.Registered(session.DeactivateCommand))
	assert.Equal(t, []string{"preactivate", "activate", "postactivate"}, f.runner.RanHooks())

	for _, p := range hooks.Points {
		assert.FileExists(t, hooks.Layout{Ext: "sh"}.ScriptPath(f.env("foo"), p))
	}
}

func TestActivate_Missing(t *testing.T) {
	f := newFixture(t)
	before := f.s.Clone()

	err := f.m.Activate(context.Background(), f.s, "nope", venv.ActivateOptions{})
	assert.ErrorIs(t, err, venv.ErrNotFound)
	assert.True(t, session.Diff(before, f.s).Empty())
}

func TestActivate_PromptOverridesStoredLabel(t *testing.T) {
	f := newFixture(t, "foo")
	f.materialize(t, "foo")

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{Prompt: "work"}))
	assert.Equal(t, "work", f.s.Getenv(venv.PromptVar))
}

func TestActivate_LaterHooksSeeEarlierChanges(t *testing.T) {
	f := newFixture(t, "foo")
	var seen string
	f.runner.On("preactivate", func(s *session.State, _ io.Writer) error {
		s.Setenv("FROM_PRE", "1")
		return nil
	})
	f.runner.On("postactivate", func(s *session.State, _ io.Writer) error {
		seen = s.Getenv("FROM_PRE")
		return nil
	})

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))
	assert.Equal(t, "1", seen)
}

func TestActivate_FailingHookIsLogged(t *testing.T) {
	f := newFixture(t, "foo")
	f.runner.On("preactivate", func(s *session.State, _ io.Writer) error {
		s.Setenv("PARTIAL", "1")
		return errors.New("boom")
	})

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))
	assert.Contains(t, f.logs.String(), "hook failed")
	_, ok := f.s.LookupEnv("PARTIAL")
	assert.False(t, ok)
	assert.Equal(t, f.env("foo"), f.s.Getenv(venv.VirtualEnvVar))
}

func TestActivate_ReplacesActiveEnv(t *testing.T) {
	f := newFixture(t, "foo", "bar")
	origPath := f.s.Getenv("PATH")

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))
	require.NoError(t, f.m.Activate(context.Background(), f.s, "bar", venv.ActivateOptions{}))

	assert.Equal(t, f.env("bar"), f.s.Getenv(venv.VirtualEnvVar))
	assert.Equal(t, filepath.Join(f.env("bar"), "bin")+string(os.PathListSeparator)+origPath, f.s.Getenv("PATH"))
	assert.Contains(t, f.runner.RanHooks(), "predeactivate")
}

func TestDeactivate_RestoresSession(t *testing.T) {
	f := newFixture(t, "foo")
	f.s.Setenv("PYTHONHOME", "/opt/python")
	before := f.s.Clone()

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))
	_, ok := f.s.LookupEnv("PYTHONHOME")
	require.False(t, ok)

	require.NoError(t, f.m.Deactivate(context.Background(), f.s))

	assert.Equal(t, before.Getenv("PATH"), f.s.Getenv("PATH"))
	assert.Equal(t, "/opt/python", f.s.Getenv("PYTHONHOME"))
	assert.False(t, f.s.Registered(session.DeactivateCommand))
	assert.True(t, session.Diff(before, f.s).Empty(), "%+v", session.Diff(before, f.s))
	assert.Equal(t, []string{"preactivate", "activate", "postactivate", "predeactivate", "postdeactivate"},
		f.runner.RanHooks())
}

func TestDeactivate_UnsetPathStaysUnset(t *testing.T) {
	f := newFixture(t, "foo")
	f.s.Unsetenv("PATH")
	before := f.s.Clone()

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))
	require.Equal(t, filepath.Join(f.env("foo"), "bin"), f.s.Getenv("PATH"))
	require.NoError(t, f.m.Deactivate(context.Background(), f.s))

	_, ok := f.s.LookupEnv("PATH")
	assert.False(t, ok)
	assert.True(t, session.Diff(before, f.s).Empty(), "%+v", session.Diff(before, f.s))
}

func TestActivate_NonzeroHookStatusKeepsChanges(t *testing.T) {
	f := newFixture(t, "foo")
	f.runner.On("postactivate", func(s *session.State, _ io.Writer) error {
		s.Setenv("DJANGO_SETTINGS_MODULE", "app.settings")
		return &hooks.StatusError{Script: "postactivate.sh", Status: "1"}
	})

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))

	assert.Equal(t, "app.settings", f.s.Getenv("DJANGO_SETTINGS_MODULE"))
	assert.True(t, f.s.Registered(session.DeactivateCommand))
	assert.Contains(t, f.logs.String(), "nonzero status")
}

func TestDeactivate_NotActive(t *testing.T) {
	f := newFixture(t)
	before := f.s.Clone()

	require.NoError(t, f.m.Deactivate(context.Background(), f.s))
	assert.True(t, session.Diff(before, f.s).Empty())
	assert.Empty(t, f.runner.Ran)
}

func TestDeactivate_FailingHookStillCleansUp(t *testing.T) {
	f := newFixture(t, "foo")
	before := f.s.Clone()
	f.runner.On("predeactivate", func(*session.State, io.Writer) error { return errors.New("boom") })
	f.runner.On("postdeactivate", func(*session.State, io.Writer) error { return errors.New("boom") })

	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))
	require.NoError(t, f.m.Deactivate(context.Background(), f.s))

	assert.True(t, session.Diff(before, f.s).Empty())
	assert.Contains(t, f.logs.String(), "predeactivate.sh")
	assert.Contains(t, f.logs.String(), "postdeactivate.sh")
}

func TestWorkon_NoNameListsWithoutMutating(t *testing.T) {
	f := newFixture(t, "foo", "bar")
	before := f.s.Clone()

	require.NoError(t, f.m.Workon(context.Background(), f.s, "", venv.ActivateOptions{}))

	assert.Equal(t, "bar\nfoo\n", f.out.String())
	assert.True(t, session.Diff(before, f.s).Empty())
}

func TestWorkon_EmptyRootListsNothing(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.m.Workon(context.Background(), f.s, "", venv.ActivateOptions{}))
	assert.Empty(t, f.out.String())
}

func TestWorkon_ChangesToProject(t *testing.T) {
	f := newFixture(t, "foo")
	project := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(f.env("foo"), venv.ProjectFile), []byte(project+"\n"), 0644))

	require.NoError(t, f.m.Workon(context.Background(), f.s, "foo", venv.ActivateOptions{}))

	assert.Equal(t, f.env("foo"), f.s.Getenv(venv.VirtualEnvVar))
	assert.Equal(t, project, f.s.Dir)
}

func TestWorkon_NoProjectIsQuiet(t *testing.T) {
	f := newFixture(t, "foo")
	dir := f.s.Dir

	require.NoError(t, f.m.Workon(context.Background(), f.s, "foo", venv.ActivateOptions{}))

	assert.Equal(t, dir, f.s.Dir)
	assert.Empty(t, f.errOut.String())
}

func TestWorkon_Reinstall(t *testing.T) {
	f := newFixture(t, "foo")
	script := hooks.Layout{Ext: "sh"}.ScriptPath(f.env("foo"), hooks.PostActivate)
	f.materialize(t, "foo")
	require.NoError(t, os.WriteFile(script, []byte("echo mine\n"), 0755))

	require.NoError(t, f.m.Workon(context.Background(), f.s, "foo", venv.ActivateOptions{}))
	assert.Equal(t, "echo mine\n", testutil.ReadFile(t, script))

	require.NoError(t, f.m.Workon(context.Background(), f.s, "foo", venv.ActivateOptions{Reinstall: true}))
	assert.Contains(t, testutil.ReadFile(t, script), "-- foo postactivate")
}
