package setup

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockFormRunner는 테스트용 FormRunner다.
type mockFormRunner struct {
	input    *Input
	defaults Input
	shells   []string
	confirm  bool
	asked    int
}

func (m *mockFormRunner) RunSettingsForm(defaults Input, shells []string) (*Input, error) {
	m.defaults = defaults
	m.shells = shells
	if m.input == nil {
		return nil, fmt.Errorf("no input")
	}
	return m.input, nil
}

func (m *mockFormRunner) RunConfirm(message string) (bool, error) {
	m.asked++
	return m.confirm, nil
}

func newRunner(t *testing.T, mock *mockFormRunner) (*Runner, string, *bytes.Buffer) {
	t.Helper()
	home := t.TempDir()

	fc := testutil.NewFakeCommander()
	fc.Register("virtualenv --version", "virtualenv 20.26.3", nil)
	fc.Register("pip --version", "pip 24.0", nil)
	fc.Register("sh -c exit 0", "", nil)

	out := &bytes.Buffer{}
	return &Runner{
		CfgPath:    filepath.Join(home, ".config", "vew", "config.toml"),
		Commander:  fc,
		FormRunner: mock,
		Fs:         afero.NewOsFs(),
		Out:        out,
		Home:       home,
		Shell:      "zsh",
	}, home, out
}

func TestRunner_FirstRun(t *testing.T) {
	mock := &mockFormRunner{input: &Input{
		RootDir:   "~/envs",
		Creator:   "virtualenv",
		Installer: "pip",
		Shell:     "zsh",
	}}
	r, home, out := newRunner(t, mock)

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, "zsh", mock.defaults.Shell)
	assert.Equal(t, "virtualenv", mock.defaults.Creator)
	assert.Equal(t, []string{"bash", "zsh", "fish"}, mock.shells)
	assert.Zero(t, mock.asked)

	cfg, err := config.Load(r.CfgPath)
	require.NoError(t, err)
	assert.Equal(t, "~/envs", cfg.RootDir)

	assert.DirExists(t, filepath.Join(home, "envs"))
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(home, ".zshrc")), `eval "$(vew init zsh)"`)
	assert.Contains(t, out.String(), "[✓] root_dir")
	assert.Contains(t, out.String(), "[✓] shell")
}

func TestRunner_DetectsVenvWhenVirtualenvMissing(t *testing.T) {
	mock := &mockFormRunner{input: &Input{RootDir: "~/envs", Creator: "python3 -m venv", Installer: "pip"}}
	r, _, _ := newRunner(t, mock)
	fc := testutil.NewFakeCommander()
	fc.Register("virtualenv --version", "", fmt.Errorf("not found"))
	fc.Register("python3 -m venv --help", "usage: venv", nil)
	fc.DefaultResponse = &testutil.Response{}
	r.Commander = fc

	require.NoError(t, r.Run(context.Background()))
	assert.Equal(t, "python3 -m venv", mock.defaults.Creator)

	cfg, err := config.Load(r.CfgPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"python3", "-m", "venv"}, cfg.CreatorCommand())
}

func TestRunner_ExistingConfigDeclined(t *testing.T) {
	mock := &mockFormRunner{input: &Input{RootDir: "~/other"}, confirm: false}
	r, _, out := newRunner(t, mock)
	require.NoError(t, os.MkdirAll(filepath.Dir(r.CfgPath), 0700))
	require.NoError(t, os.WriteFile(r.CfgPath, []byte("root_dir = \"~/mine\"\n"), 0600))

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, 1, mock.asked)
	assert.Contains(t, out.String(), "취소")
	assert.Equal(t, "root_dir = \"~/mine\"\n", testutil.ReadFile(t, r.CfgPath))
}

func TestRunner_ExistingConfigForce(t *testing.T) {
	mock := &mockFormRunner{input: &Input{RootDir: "~/other", Creator: "virtualenv", Installer: "uv pip"}}
	r, _, _ := newRunner(t, mock)
	r.Force = true
	require.NoError(t, os.MkdirAll(filepath.Dir(r.CfgPath), 0700))
	require.NoError(t, os.WriteFile(r.CfgPath, []byte("root_dir = \"~/mine\"\n"), 0600))

	require.NoError(t, r.Run(context.Background()))

	assert.Zero(t, mock.asked)
	assert.Equal(t, "~/mine", mock.defaults.RootDir)
	cfg, err := config.Load(r.CfgPath)
	require.NoError(t, err)
	assert.Equal(t, "~/other", cfg.RootDir)
	assert.Equal(t, []string{"uv", "pip"}, cfg.InstallerCommand())
}

func TestRunner_FormError(t *testing.T) {
	r, _, _ := newRunner(t, &mockFormRunner{})

	assert.Error(t, r.Run(context.Background()))
	_, err := os.Stat(r.CfgPath)
	assert.True(t, os.IsNotExist(err))
}

func TestExpandHome(t *testing.T) {
	assert.Equal(t, "/home/u", expandHome("~", "/home/u"))
	assert.Equal(t, "/home/u/.virtualenvs", expandHome("~/.virtualenvs", "/home/u"))
	assert.Equal(t, "/opt/envs", expandHome("/opt/envs", "/home/u"))
}
