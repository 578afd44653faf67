// Package venv implements the environment lifecycle: locating environments,
// activating and deactivating them with their hooks, and creating, copying
// and removing them. Every operation acts on an explicit *session.State.
package venv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
	"github.com/spf13/afero"
)

// Manager는 환경 전환을 수행한다.
type Manager struct {
	Fs        afero.Fs
	Commander cmdexec.Commander
	Runner    hooks.Runner
	Config    *config.Config
	Logger    *log.Logger
	// Out은 hook 출력을 포함한 사용자 출력을 받는다.
	Out io.Writer
	// Err는 생성 도구와 설치 도구의 stderr를 받는다.
	Err io.Writer
}

// ActivateOptions는 Activate와 Workon의 옵션이다.
type ActivateOptions struct {
	Reinstall bool
	Prompt    string
}

func (m *Manager) layout() hooks.Layout {
	return hooks.Layout{Ext: m.Config.HookExt}
}

func (m *Manager) errOut() io.Writer {
	if m.Err == nil {
		return os.Stderr
	}
	return m.Err
}

// Activate는 지정한 환경(name이 비어 있으면 활성 환경)을 현재 대상으로
// 만든다. 다른 환경이 활성 상태면 먼저 비활성화한다.
func (m *Manager) Activate(ctx context.Context, s *session.State, name string, opts ActivateOptions) error {
	envDir, err := m.Resolve(s, name)
	if err != nil {
		return err
	}
	return m.activate(ctx, s, envDir, opts)
}

func (m *Manager) activate(ctx context.Context, s *session.State, envDir string, opts ActivateOptions) error {
	if err := m.Deactivate(ctx, s); err != nil {
		return err
	}

	if err := m.layout().Ensure(m.Fs, envDir, hooks.EnsureOptions{
		Reinstall: opts.Reinstall,
		Prompt:    opts.Prompt,
	}); err != nil {
		return fmt.Errorf("venv.Activate: %w", err)
	}

	prompt := opts.Prompt
	if prompt == "" {
		prompt = filepath.Base(envDir)
	}
	s.Setenv(VirtualEnvVar, envDir)
	s.Setenv(PromptVar, prompt)

	// later hooks may depend on variables the earlier ones set
	m.runHook(ctx, s, hooks.PreActivate, envDir)
	m.runHook(ctx, s, hooks.Activate, envDir)
	if opts.Prompt != "" && s.Getenv(PromptVar) != opts.Prompt {
		s.Setenv(PromptVar, opts.Prompt)
	}
	m.runHook(ctx, s, hooks.PostActivate, envDir)

	m.Logger.Debug("activated", "env", envDir)
	return nil
}

// Deactivate는 등록된 deactivate 명령을 실행한다. 활성 환경이 없으면
// 아무것도 하지 않는다. hook 실패는 로그로 남기고 정리는 끝까지 수행한다.
func (m *Manager) Deactivate(ctx context.Context, s *session.State) error {
	cmd, ok := s.Lookup(session.DeactivateCommand)
	if !ok {
		return nil
	}
	envDir := s.Getenv(VirtualEnvVar)

	if len(cmd.Hooks) > 0 {
		m.runScript(ctx, s, cmd.Hooks[0])
	}

	// activation of a session without PATH leaves only the env's bin dir
	if envDir != "" && s.RemovePathEntry(hooks.BinDir(envDir)) && s.Getenv("PATH") == "" {
		s.Unsetenv("PATH")
	}
	if old, ok := s.LookupEnv(OldPythonHomeVar); ok {
		s.Setenv("PYTHONHOME", old)
		s.Unsetenv(OldPythonHomeVar)
	}

	if len(cmd.Hooks) > 1 {
		m.runScript(ctx, s, cmd.Hooks[1])
	}

	s.Unsetenv(VirtualEnvVar)
	s.Unsetenv(PromptVar)
	s.Unregister(session.DeactivateCommand)

	m.Logger.Debug("deactivated", "env", envDir)
	return nil
}

// Workon은 name이 비어 있으면 환경 목록을 출력한다. 그렇지 않으면 환경을
// 활성화하고 프로젝트 디렉터리가 있으면 그곳으로 이동한다.
func (m *Manager) Workon(ctx context.Context, s *session.State, name string, opts ActivateOptions) error {
	if name == "" {
		return m.List(ctx, s, false)
	}
	if err := m.Activate(ctx, s, name, opts); err != nil {
		return err
	}
	return m.CdProject(ctx, s, CdProjectOptions{Quiet: true})
}

// runHook는 envDir 아래의 p 스크립트를 source한다.
func (m *Manager) runHook(ctx context.Context, s *session.State, p hooks.Point, envDir string) {
	m.runScript(ctx, s, m.layout().ScriptPath(envDir, p))
}

// runScript는 script를 s에 source한다. 없는 스크립트는 건너뛴다. 0이 아닌
// 상태로 끝난 hook은 경고를 남기고 변경을 유지한다. 그 밖의 실패는 로그만
// 남기고 s를 바꾸지 않는다.
func (m *Manager) runScript(ctx context.Context, s *session.State, script string) {
	if !m.exists(script) {
		return
	}
	next, err := m.Runner.Run(ctx, script, s, m.Out)
	var status *hooks.StatusError
	switch {
	case errors.As(err, &status):
		m.Logger.Warn("hook returned nonzero status", "script", script, "status", status.Status)
	case err != nil:
		m.Logger.Error("hook failed", "script", script, "err", err)
		return
	}
	s.Adopt(next)
}
