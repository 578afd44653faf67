package venv_test

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detailsHook prints what the default get_env_details template prints.
func detailsHook(s *session.State, out io.Writer) error {
	fmt.Fprintf(out, "-- %s get_env_details\n", filepath.Base(s.Getenv(venv.VirtualEnvVar)))
	return nil
}

func TestList_Brief(t *testing.T) {
	f := newFixture(t, "foo")

	require.NoError(t, f.m.List(context.Background(), f.s, false))
	assert.Equal(t, "foo\n", f.out.String())
	assert.Empty(t, f.runner.Ran)
}

func TestList_Long(t *testing.T) {
	f := newFixture(t, "foo", "barbaz")
	f.materialize(t, "foo")
	f.materialize(t, "barbaz")
	f.runner.On("get_env_details", func(_ *session.State, out io.Writer) error {
		fmt.Fprintln(out, "details")
		return nil
	})
	before := f.s.Clone()

	require.NoError(t, f.m.List(context.Background(), f.s, true))

	assert.Equal(t, "barbaz\n======\ndetails\n\nfoo\n===\ndetails\n\n", f.out.String())
	assert.True(t, session.Diff(before, f.s).Empty())
}

func TestList_EmptyRoot(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.m.List(context.Background(), f.s, true))
	assert.Empty(t, f.out.String())
}

func TestShow(t *testing.T) {
	f := newFixture(t, "foo")
	f.materialize(t, "foo")
	f.runner.On("get_env_details", detailsHook)
	require.NoError(t, f.m.Activate(context.Background(), f.s, "foo", venv.ActivateOptions{}))

	require.NoError(t, f.m.Show(context.Background(), f.s, ""))
	require.NoError(t, f.m.Show(context.Background(), f.s, "foo"))
	assert.Equal(t, "-- foo get_env_details\n-- foo get_env_details\n", f.out.String())

	err := f.m.Show(context.Background(), f.s, "nope")
	assert.ErrorIs(t, err, venv.ErrNotFound)
}
