package setup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/config"
)

// DetectShell은 현재 사용자의 셸을 감지한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}
	return filepath.Base(sh)
}

// DetectCreator는 사용 가능한 가상환경 생성 도구를 찾는다.
// virtualenv가 없으면 표준 venv 모듈을 시도하고, 둘 다 없으면 기본값을 반환한다.
func DetectCreator(ctx context.Context, cmd cmdexec.Commander) string {
	if _, err := cmd.Run(ctx, "virtualenv", "--version"); err == nil {
		return "virtualenv"
	}
	if _, err := cmd.Run(ctx, "python3", "-m", "venv", "--help"); err == nil {
		return "python3 -m venv"
	}
	return config.DefaultCreator
}
