package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kballard/go-shellquote"
)

// ErrConfig는 설정 오류(설정 파일, 루트 디렉토리 해석 실패)를 나타내는 sentinel error다.
var ErrConfig = errors.New("configuration error")

const (
	// DefaultRootDir는 환경 변수로 재정의되지 않았을 때의 가상환경 루트다.
	DefaultRootDir = "~/.virtualenvs"
	// DefaultCreator는 가상환경 생성 도구다.
	DefaultCreator = "virtualenv"
	// DefaultInstaller는 패키지 설치 도구다.
	DefaultInstaller = "pip"
	// DefaultHookShell은 hook 스크립트를 source하는 셸이다.
	DefaultHookShell = "sh"
	// DefaultHookExt는 hook 스크립트 확장자다.
	DefaultHookExt = "sh"
)

// Config는 vew 설정 파일의 최상위 구조체다.
type Config struct {
	Version     int    `toml:"version"`
	RootDir     string `toml:"root_dir"`
	Creator     string `toml:"creator"`
	Installer   string `toml:"installer"`
	HookShell   string `toml:"hook_shell"`
	HookExt     string `toml:"hook_ext"`
	PromptColor string `toml:"prompt_color"`
}

// Default는 설정 파일이 없을 때 사용하는 기본 설정을 반환한다.
func Default() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// Load는 config.toml을 파싱하여 Config를 반환한다.
// 파일이 없으면 기본 설정을 반환한다.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config.Load: %w: %w", ErrConfig, err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save는 Config를 TOML로 저장한다 (0600 권한).
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config.Save: %w", err)
	}
	return nil
}

// CreatorCommand는 creator 명령행을 argv로 분리한다.
func (c *Config) CreatorCommand() []string {
	return mustSplit(c.Creator)
}

// InstallerCommand는 installer 명령행을 argv로 분리한다.
func (c *Config) InstallerCommand() []string {
	return mustSplit(c.Installer)
}

// HookShellCommand는 hook_shell 명령행을 argv로 분리한다.
func (c *Config) HookShellCommand() []string {
	return mustSplit(c.HookShell)
}

// mustSplit은 validate를 통과한 명령행만 받는다.
func mustSplit(line string) []string {
	argv, err := shellquote.Split(line)
	if err != nil {
		return strings.Fields(line)
	}
	return argv
}

func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.RootDir == "" {
		c.RootDir = DefaultRootDir
	}
	if c.Creator == "" {
		c.Creator = DefaultCreator
	}
	if c.Installer == "" {
		c.Installer = DefaultInstaller
	}
	if c.HookShell == "" {
		c.HookShell = DefaultHookShell
	}
	if c.HookExt == "" {
		c.HookExt = DefaultHookExt
	}
	c.HookExt = strings.TrimPrefix(c.HookExt, ".")
}

func (c *Config) validate() error {
	for key, line := range map[string]string{
		"creator":    c.Creator,
		"installer":  c.Installer,
		"hook_shell": c.HookShell,
	} {
		argv, err := shellquote.Split(line)
		if err != nil {
			return fmt.Errorf("config.Load: %w: %s: %v", ErrConfig, key, err)
		}
		if len(argv) == 0 {
			return fmt.Errorf("config.Load: %w: %s 값이 비어 있습니다", ErrConfig, key)
		}
	}
	if strings.ContainsAny(c.HookExt, `/\`) {
		return fmt.Errorf("config.Load: %w: hook_ext에 경로 구분자를 쓸 수 없습니다: %q", ErrConfig, c.HookExt)
	}
	return nil
}
