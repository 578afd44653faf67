package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/vew/internal/shell"
	"github.com/spf13/afero"
)

// ShellRCPath는 셸별 RC 파일 경로를 반환한다.
func ShellRCPath(shellType, home string) string {
	switch shellType {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "conf.d", "vew.fish")
	default:
		return ""
	}
}

// RCSnippet은 RC 파일에 추가할 셸 통합 블록을 반환한다.
// wrapper 함수는 매 셸 시작 시 vew init으로 생성된다.
func RCSnippet(shellType string) string {
	switch shellType {
	case "bash", "zsh":
		return fmt.Sprintf("# %s (%s)\neval \"$(vew init %s)\"\n", shell.Marker, shellType, shellType)
	case "fish":
		return fmt.Sprintf("# %s (fish)\nvew init fish | source\n", shell.Marker)
	default:
		return ""
	}
}

// InstallShellHook은 셸 RC 파일에 vew 셸 통합을 추가한다.
// 이미 설치되어 있으면 건너뛴다.
func InstallShellHook(fs afero.Fs, shellType, rcPath string) error {
	snippet := RCSnippet(shellType)
	if snippet == "" {
		return fmt.Errorf("setup.InstallShellHook: 지원하지 않는 셸: %s", shellType)
	}

	existing, _ := afero.ReadFile(fs, rcPath) // 파일이 없으면 빈 바이트
	if strings.Contains(string(existing), shell.Marker) {
		return nil // 이미 설치됨
	}

	if err := fs.MkdirAll(filepath.Dir(rcPath), 0755); err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	f, err := fs.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s", snippet); err != nil {
		return fmt.Errorf("setup.InstallShellHook: %w", err)
	}

	return nil
}
