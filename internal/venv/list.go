package venv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
)

// List는 환경 이름을 출력한다. long 모드에서는 각 이름 아래에 밑줄과
// get_env_details 출력을 덧붙인다. 세션은 바꾸지 않는다.
func (m *Manager) List(ctx context.Context, s *session.State, long bool) error {
	view := s.Clone()
	names, err := m.ListEnvs(view)
	if err != nil {
		return err
	}
	root, err := m.RootDir(view)
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(m.Out, name)
		if !long {
			continue
		}
		fmt.Fprintln(m.Out, strings.Repeat("=", len(name)))
		m.runHook(ctx, view, hooks.GetEnvDetails, filepath.Join(root, name))
		fmt.Fprintln(m.Out)
	}
	return nil
}

// Show는 지정한 환경(name이 비어 있으면 활성 환경)의 get_env_details를
// 실행한다.
func (m *Manager) Show(ctx context.Context, s *session.State, name string) error {
	envDir, err := m.Resolve(s, name)
	if err != nil {
		return err
	}
	m.runHook(ctx, s, hooks.GetEnvDetails, envDir)
	return nil
}
