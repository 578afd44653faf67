package config_test

import (
	"path/filepath"
	"testing"

	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidTOML(t *testing.T) {
	content := `version = 1
root_dir = "~/envs"
creator = "python3 -m virtualenv"
installer = "uv pip"
hook_shell = "bash --norc"
hook_ext = ".bash"
prompt_color = "212"`

	path := testutil.TempConfigFile(t, content)
	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "~/envs", cfg.RootDir)
	assert.Equal(t, []string{"python3", "-m", "virtualenv"}, cfg.CreatorCommand())
	assert.Equal(t, []string{"uv", "pip"}, cfg.InstallerCommand())
	assert.Equal(t, []string{"bash", "--norc"}, cfg.HookShellCommand())
	assert.Equal(t, "bash", cfg.HookExt)
	assert.Equal(t, "212", cfg.PromptColor)
}

func TestLoadConfig_Defaults(t *testing.T) {
	path := testutil.TempConfigFile(t, "version = 1\n")
	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, config.DefaultRootDir, cfg.RootDir)
	assert.Equal(t, []string{"virtualenv"}, cfg.CreatorCommand())
	assert.Equal(t, []string{"pip"}, cfg.InstallerCommand())
	assert.Equal(t, []string{"sh"}, cfg.HookShellCommand())
	assert.Equal(t, "sh", cfg.HookExt)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadConfig_InvalidTOML(t *testing.T) {
	path := testutil.TempConfigFile(t, "version = = 1")
	_, err := config.Load(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfig)
}

func TestLoadConfig_UnbalancedQuotes(t *testing.T) {
	path := testutil.TempConfigFile(t, `creator = "virtualenv 'oops"`)
	_, err := config.Load(path)

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrConfig)
	assert.Contains(t, err.Error(), "creator")
}

func TestLoadConfig_HookExtWithSeparator(t *testing.T) {
	path := testutil.TempConfigFile(t, `hook_ext = "a/b"`)
	_, err := config.Load(path)

	assert.ErrorIs(t, err, config.ErrConfig)
}
