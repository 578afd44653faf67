package hooks_test

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/testutil"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "VEW_WANT_HELPER_DUMP"

// TestHelperDump is not a real test: the shell runner execs the test
// binary with helperEnv set to dump the environment.
func TestHelperDump(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	dir, _ := os.Getwd()
	hooks.WriteDump(os.Stdout, os.Environ(), dir)
	os.Exit(0)
}

func realRunner(t *testing.T) *hooks.ShellRunner {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return &hooks.ShellRunner{
		Commander: &cmdexec.RealCommander{},
		Shell:     []string{"sh"},
		Dump:      []string{os.Args[0], "-test.run=^TestHelperDump$"},
	}
}

func helperSession(t *testing.T) *session.State {
	t.Helper()
	s := session.New(t.TempDir())
	s.Setenv(helperEnv, "1")
	s.Setenv("PATH", "/usr/bin:/bin")
	return s
}

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hook.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0755))
	return path
}

func TestShellRunner_ActivateTemplate(t *testing.T) {
	r := realRunner(t)
	envDir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, layout.Ensure(afero.NewOsFs(), envDir, hooks.EnsureOptions{}))

	s := helperSession(t)
	s.Setenv("PYTHONHOME", "/opt/py")

	var out bytes.Buffer
	next, err := r.Run(context.Background(), layout.ScriptPath(envDir, hooks.Activate), s, &out)
	require.NoError(t, err)

	assert.Equal(t, envDir, next.Getenv("VIRTUAL_ENV"))
	assert.Equal(t, "foo", next.Getenv("VIRTUAL_ENV_PROMPT"))
	assert.Equal(t, filepath.Join(envDir, "bin")+":/usr/bin:/bin", next.Getenv("PATH"))
	assert.Equal(t, "/opt/py", next.Getenv("_OLD_VIRTUAL_PYTHONHOME"))
	_, ok := next.LookupEnv("PYTHONHOME")
	assert.False(t, ok)

	s.Adopt(next)
	cmd, ok := s.Lookup(session.DeactivateCommand)
	require.True(t, ok)
	assert.Equal(t, []string{
		layout.ScriptPath(envDir, hooks.PreDeactivate),
		layout.ScriptPath(envDir, hooks.PostDeactivate),
	}, cmd.Hooks)
}

func TestShellRunner_HookOutputGoesToOut(t *testing.T) {
	r := realRunner(t)
	envDir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, layout.Ensure(afero.NewOsFs(), envDir, hooks.EnsureOptions{}))

	var out bytes.Buffer
	next, err := r.Run(context.Background(), layout.ScriptPath(envDir, hooks.PostActivate), helperSession(t), &out)
	require.NoError(t, err)

	assert.Equal(t, "-- foo postactivate\n", out.String())
	assert.Equal(t, "1", next.Getenv(helperEnv))
}

func TestShellRunner_TracksDirectoryAndUnset(t *testing.T) {
	r := realRunner(t)
	target := t.TempDir()
	script := writeScript(t, fmt.Sprintf("cd %s\nunset DROP_ME\nexport NEW_VAR='a b'\n", hooks.Quote(target)))

	s := helperSession(t)
	s.Setenv("DROP_ME", "x")

	next, err := r.Run(context.Background(), script, s, &bytes.Buffer{})
	require.NoError(t, err)

	resolved, _ := filepath.EvalSymlinks(target)
	got, _ := filepath.EvalSymlinks(next.Dir)
	assert.Equal(t, resolved, got)
	assert.Equal(t, "a b", next.Getenv("NEW_VAR"))
	_, ok := next.LookupEnv("DROP_ME")
	assert.False(t, ok)
	_, ok = next.LookupEnv("PWD")
	assert.False(t, ok)
}

func TestShellRunner_NonzeroStatusKeepsChanges(t *testing.T) {
	r := realRunner(t)
	script := writeScript(t, "echo broken >&2\nexport DJANGO_SETTINGS_MODULE=app.settings\n[ -f \"$VIRTUAL_ENV/.env\" ] && . \"$VIRTUAL_ENV/.env\"\n")

	s := helperSession(t)
	s.Setenv("VIRTUAL_ENV", t.TempDir())

	var out bytes.Buffer
	next, err := r.Run(context.Background(), script, s, &out)

	var status *hooks.StatusError
	require.ErrorAs(t, err, &status)
	assert.Equal(t, "1", status.Status)
	require.NotNil(t, next)
	assert.Equal(t, "app.settings", next.Getenv("DJANGO_SETTINGS_MODULE"))
	_, ok := next.LookupEnv("VEW_HOOK_STATUS")
	assert.False(t, ok)
	assert.Contains(t, out.String(), "broken")
}

func TestShellRunner_ExplicitExitFails(t *testing.T) {
	r := realRunner(t)
	script := writeScript(t, "export LOST=1\nexit 3\n")

	next, err := r.Run(context.Background(), script, helperSession(t), &bytes.Buffer{})
	require.Error(t, err)
	assert.Nil(t, next)
}

func TestShellRunner_TrailingBackslashInSession(t *testing.T) {
	r := realRunner(t)
	envDir := filepath.Join(t.TempDir(), "foo")
	require.NoError(t, layout.Ensure(afero.NewOsFs(), envDir, hooks.EnsureOptions{}))

	s := helperSession(t)
	s.Setenv("TRAILING", `C:\Users\me\`)

	next, err := r.Run(context.Background(), layout.ScriptPath(envDir, hooks.Activate), s, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, `C:\Users\me\`, next.Getenv("TRAILING"))
	assert.Equal(t, filepath.Join(envDir, "bin")+":/usr/bin:/bin", next.Getenv("PATH"))
	s.Adopt(next)
	assert.True(t, s.Registered(session.DeactivateCommand))
}

func TestShellRunner_ExitZeroWithoutDump(t *testing.T) {
	r := realRunner(t)
	script := writeScript(t, "exit 0\n")

	_, err := r.Run(context.Background(), script, helperSession(t), &bytes.Buffer{})
	assert.ErrorIs(t, err, hooks.ErrNoDump)
}

func TestShellRunner_Invocation(t *testing.T) {
	fc := testutil.NewFakeCommander()
	var dump bytes.Buffer
	require.NoError(t, hooks.WriteDump(&dump, []string{"A=1", "PWD=/elsewhere"}, "/work"))
	fc.Register("bash --norc -c", dump.String(), nil)

	r := &hooks.ShellRunner{Commander: fc, Shell: []string{"bash", "--norc"}, Dump: []string{"vew", "hook-env"}}
	s := session.New("/start")
	s.Setenv("PWD", "/start")
	s.Setenv("BASH_FUNC_x%%", "() { :; }")

	next, err := r.Run(context.Background(), "/envs/a/bin/postactivate.sh", s, &bytes.Buffer{})
	require.NoError(t, err)

	require.Len(t, fc.Calls, 1)
	assert.True(t, strings.HasSuffix(fc.Calls[0], "vew-hook /envs/a/bin/postactivate.sh vew hook-env"))
	assert.Equal(t, "/start", fc.OptCalls[0].Dir)
	assert.Equal(t, "/work", next.Dir)
	assert.Equal(t, "1", next.Getenv("A"))
	assert.Equal(t, "/start", next.Getenv("PWD"))
	assert.Equal(t, "() { :; }", next.Getenv("BASH_FUNC_x%%"))
}

func TestShellRunner_Unconfigured(t *testing.T) {
	r := &hooks.ShellRunner{Commander: testutil.NewFakeCommander()}
	_, err := r.Run(context.Background(), "/x.sh", session.New("/"), &bytes.Buffer{})
	assert.Error(t, err)
}
