package venv

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
	"github.com/spf13/afero"
)

// Remove는 지정한 환경을 prermvirtualenv와 postrmvirtualenv hook 사이에서
// 삭제한다. 활성 환경은 경고 후 건너뛴다. 삭제가 중간에 실패해도 되돌리지
// 않는다.
func (m *Manager) Remove(ctx context.Context, s *session.State, names ...string) error {
	active, _ := CurrentEnv(s)

	for _, name := range names {
		envDir, err := m.Resolve(s, name)
		if err != nil {
			return err
		}
		if active != "" && filepath.Clean(envDir) == filepath.Clean(active) {
			m.Logger.Warn("virtualenv is currently active, not removing", "env", envDir)
			continue
		}

		m.runHook(ctx, s, hooks.PreRmVirtualenv, envDir)

		// the post hook lives inside the tree being deleted
		post, err := m.stashScript(m.layout().ScriptPath(envDir, hooks.PostRmVirtualenv))
		if err != nil {
			return fmt.Errorf("venv.Remove: %w", err)
		}

		fmt.Fprintf(m.Out, "Removing %s\n", filepath.Base(envDir))
		if err := m.Fs.RemoveAll(envDir); err != nil {
			m.dropStash(post)
			return fmt.Errorf("venv.Remove: %w", err)
		}

		if post != "" {
			m.runScript(ctx, s, post)
			m.dropStash(post)
		}
	}
	return nil
}

// stashScript는 script를 같은 이름으로 임시 디렉터리에 복사하고 그 경로를
// 반환한다. script가 없으면 ""를 반환한다.
func (m *Manager) stashScript(script string) (string, error) {
	data, err := afero.ReadFile(m.Fs, script)
	if err != nil {
		if !m.exists(script) {
			return "", nil
		}
		return "", err
	}
	dir, err := afero.TempDir(m.Fs, "", "vew-hook-")
	if err != nil {
		return "", err
	}
	stash := filepath.Join(dir, filepath.Base(script))
	if err := afero.WriteFile(m.Fs, stash, data, 0o755); err != nil {
		m.Fs.RemoveAll(dir)
		return "", err
	}
	return stash, nil
}

func (m *Manager) dropStash(path string) {
	if path != "" {
		m.Fs.RemoveAll(filepath.Dir(path))
	}
}
