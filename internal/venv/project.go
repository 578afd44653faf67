package venv

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/vew/internal/session"
	"github.com/spf13/afero"
)

// ProjectFile은 환경 안에서 프로젝트 디렉터리를 기록하는 파일이다.
const ProjectFile = ".project"

// CdProjectOptions는 CdProject의 옵션이다.
type CdProjectOptions struct {
	// Set은 이동 전에 새 프로젝트 디렉터리를 기록한다.
	Set string
	// Show는 프로젝트 디렉터리를 출력한다.
	Show bool
	// Quiet는 프로젝트 파일이 없을 때의 메시지를 생략한다.
	Quiet bool
}

// ProjectDir는 활성 환경에 기록된 프로젝트 디렉터리를 반환한다. 기록이
// 없으면 ok는 false다.
func (m *Manager) ProjectDir(s *session.State) (dir string, ok bool, err error) {
	envDir, err := activeEnv(s)
	if err != nil {
		return "", false, err
	}
	data, err := afero.ReadFile(m.Fs, filepath.Join(envDir, ProjectFile))
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("venv.ProjectDir: %w", err)
	}
	return strings.TrimSpace(string(data)), true, nil
}

// SetProject는 dir을 활성 환경의 프로젝트 디렉터리로 기록한다. 상대 경로는
// 세션의 작업 디렉터리 기준이다.
func (m *Manager) SetProject(s *session.State, dir string) error {
	envDir, err := activeEnv(s)
	if err != nil {
		return err
	}
	line := absPath(s, dir) + "\n"
	if err := afero.WriteFile(m.Fs, filepath.Join(envDir, ProjectFile), []byte(line), 0o644); err != nil {
		return fmt.Errorf("venv.SetProject: %w", err)
	}
	return nil
}

// CdProject는 세션을 활성 환경의 프로젝트 디렉터리로 이동한다.
func (m *Manager) CdProject(_ context.Context, s *session.State, opts CdProjectOptions) error {
	envDir, err := activeEnv(s)
	if err != nil {
		return err
	}
	if opts.Set != "" {
		if err := m.SetProject(s, opts.Set); err != nil {
			return err
		}
	}

	dir, ok, err := m.ProjectDir(s)
	if err != nil {
		return err
	}
	if !ok {
		if !opts.Quiet {
			fmt.Fprintf(m.errOut(), "No project set in %s\n", filepath.Join(envDir, ProjectFile))
		}
		return nil
	}

	if opts.Show {
		fmt.Fprintln(m.Out, dir)
	}
	return m.chdir(s, dir)
}

// CdVirtualenv는 세션을 활성 환경 디렉터리로 이동한다.
func (m *Manager) CdVirtualenv(_ context.Context, s *session.State) error {
	envDir, err := activeEnv(s)
	if err != nil {
		return err
	}
	return m.chdir(s, envDir)
}

// CdSitePackages는 세션을 활성 환경의 site-packages 디렉터리로 이동한다.
func (m *Manager) CdSitePackages(_ context.Context, s *session.State) error {
	envDir, err := activeEnv(s)
	if err != nil {
		return err
	}
	dir, err := m.SitePackages(envDir)
	if err != nil {
		return err
	}
	return m.chdir(s, dir)
}

// SitePackages는 envDir 아래 첫 번째 lib/python*/site-packages 디렉터리를
// 반환한다.
func (m *Manager) SitePackages(envDir string) (string, error) {
	matches, err := afero.Glob(m.Fs, filepath.Join(envDir, "lib", "python*", "site-packages"))
	if err != nil {
		return "", fmt.Errorf("venv.SitePackages: %w", err)
	}
	for _, p := range matches {
		if m.isDir(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("venv.SitePackages: %w: no site-packages under %s", ErrNotFound, envDir)
}

func (m *Manager) chdir(s *session.State, dir string) error {
	dir = absPath(s, dir)
	if !m.isDir(dir) {
		return fmt.Errorf("venv: %w: directory %s", ErrNotFound, dir)
	}
	s.Dir = dir
	return nil
}
