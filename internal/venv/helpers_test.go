package venv_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/logger"
	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/testutil"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// fixture bundles a Manager wired to fakes over the real filesystem.
type fixture struct {
	m      *venv.Manager
	runner *testutil.FakeRunner
	cmd    *testutil.FakeCommander
	out    *bytes.Buffer
	errOut *bytes.Buffer
	logs   *bytes.Buffer
	root   string
	s      *session.State
}

func newFixture(t *testing.T, names ...string) *fixture {
	t.Helper()

	f := &fixture{
		runner: testutil.NewFakeRunner(),
		cmd:    testutil.NewFakeCommander(),
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		logs:   &bytes.Buffer{},
		root:   testutil.TempRoot(t, names...),
	}
	f.s = testutil.NewSession(t, f.root)
	f.m = &venv.Manager{
		Fs:        afero.NewOsFs(),
		Commander: f.cmd,
		Runner:    f.runner,
		Config:    config.Default(),
		Logger:    logger.New(f.logs),
		Out:       f.out,
		Err:       f.errOut,
	}
	return f
}

func (f *fixture) env(name string) string {
	return filepath.Join(f.root, name)
}

// materialize writes the default hooks into the named environment.
func (f *fixture) materialize(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, hooks.Layout{Ext: "sh"}.Ensure(f.m.Fs, f.env(name), hooks.EnsureOptions{}))
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}
