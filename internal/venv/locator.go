package venv

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/session"
	"github.com/spf13/afero"
)

const (
	// VirtualEnvVar는 활성 환경의 절대 경로를 담는다.
	VirtualEnvVar = "VIRTUAL_ENV"
	// PromptVar는 활성 프롬프트 라벨을 담는다.
	PromptVar = "VIRTUAL_ENV_PROMPT"
	// OldPythonHomeVar는 활성화 전의 PYTHONHOME을 담는다.
	OldPythonHomeVar = "_OLD_VIRTUAL_PYTHONHOME"
)

// RootVars는 루트 디렉터리를 덮어쓰는 변수 목록이다(우선순위 순).
// 기본 루트를 쓰면 첫 번째 변수에 기록된다. VIRTUALENVWRAPPER_XONSH_DIR도
// 받아들인다.
var RootVars = []string{"WORKON_HOME", "VIRTUALENVWRAPPER_XONSH_DIR", "VIRTUALENVWRAPPER_HOOK_DIR"}

// CurrentEnv는 활성 환경 경로를 반환한다. 부수 효과는 없다.
func CurrentEnv(s *session.State) (string, bool) {
	v := s.Getenv(VirtualEnvVar)
	return v, v != ""
}

// RootDir는 모든 환경을 담는 디렉터리를 반환한다. 없는 디렉터리를 가리키는
// 변수는 경고 후 건너뛴다. 설정의 기본값을 쓰면 RootVars의 첫 번째 변수에
// 기록한다.
func (m *Manager) RootDir(s *session.State) (string, error) {
	for _, name := range RootVars {
		v, ok := s.LookupEnv(name)
		if !ok || v == "" {
			continue
		}
		dir := s.ExpandEnv(v)
		if m.isDir(dir) {
			return dir, nil
		}
		m.Logger.Warn("root override does not exist or is not a directory", "var", name, "dir", dir)
	}

	def := m.Config.RootDir
	if def == "" {
		def = config.DefaultRootDir
	}
	dir := s.ExpandEnv(def)
	if m.isDir(dir) {
		s.Setenv(RootVars[0], dir)
		return dir, nil
	}
	return "", fmt.Errorf("venv.RootDir: %w: set $%s to the directory to use for virtualenvs; %s is the default but does not exist",
		config.ErrConfig, RootVars[0], def)
}

// Resolve는 지정한 환경(name이 비어 있으면 활성 환경)의 경로를 반환한다.
func (m *Manager) Resolve(s *session.State, name string) (string, error) {
	var envDir string
	if name == "" {
		cur, ok := CurrentEnv(s)
		if !ok {
			return "", ErrNoActiveEnv
		}
		envDir = cur
	} else {
		if err := validName(name); err != nil {
			return "", err
		}
		root, err := m.RootDir(s)
		if err != nil {
			return "", err
		}
		envDir = filepath.Join(root, name)
	}

	if !m.exists(envDir) {
		return "", fmt.Errorf("venv.Resolve: %w: virtualenv %s", ErrNotFound, envDir)
	}
	return envDir, nil
}

// ListEnvs는 환경 디렉터리 이름을 정렬해 반환한다.
func (m *Manager) ListEnvs(s *session.State) ([]string, error) {
	root, err := m.RootDir(s)
	if err != nil {
		return nil, err
	}
	entries, err := afero.ReadDir(m.Fs, root)
	if err != nil {
		return nil, fmt.Errorf("venv.ListEnvs: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func validName(name string) error {
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: invalid virtualenv name %q", ErrPrecondition, name)
	}
	return nil
}

func (m *Manager) exists(path string) bool {
	_, err := m.Fs.Stat(path)
	return err == nil
}

func (m *Manager) isDir(path string) bool {
	ok, err := afero.IsDir(m.Fs, path)
	return err == nil && ok
}

// activeEnv는 활성 환경을 반환하고, 없으면 ErrNoActiveEnv를 반환한다.
func activeEnv(s *session.State) (string, error) {
	cur, ok := CurrentEnv(s)
	if !ok {
		return "", ErrNoActiveEnv
	}
	return cur, nil
}

func absPath(s *session.State, p string) string {
	p = s.ExpandEnv(p)
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.Dir, p)
	}
	return filepath.Clean(p)
}
