package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/doctor"
	"github.com/hbjs97/vew/internal/shell"
	"github.com/spf13/afero"
)

// Runner는 interactive setup의 진입점이다.
type Runner struct {
	CfgPath    string
	Commander  cmdexec.Commander
	FormRunner FormRunner
	Fs         afero.Fs
	Out        io.Writer
	// Force는 기존 설정 파일 덮어쓰기 확인을 생략한다.
	Force bool
	Home  string // 테스트용. 비어있으면 os.UserHomeDir.
	Shell string // 테스트용. 비어있으면 $SHELL에서 감지.
}

// Run은 setup 플로우를 실행한다.
func (r *Runner) Run(ctx context.Context) error {
	_, statErr := os.Stat(r.CfgPath)
	exists := statErr == nil
	if statErr != nil && !errors.Is(statErr, os.ErrNotExist) {
		return fmt.Errorf("setup.Run: %w", statErr)
	}

	cfg, err := config.Load(r.CfgPath)
	if err != nil {
		return err
	}

	if exists && !r.Force {
		ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("%s를 덮어쓰시겠습니까?", r.CfgPath))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(r.out(), "setup이 취소되었습니다.")
			return nil
		}
	}

	defaults := Input{
		RootDir:   cfg.RootDir,
		Creator:   cfg.Creator,
		Installer: cfg.Installer,
		Shell:     r.shell(),
	}
	if !exists {
		defaults.Creator = DetectCreator(ctx, r.Commander)
	}

	input, err := r.FormRunner.RunSettingsForm(defaults, shell.Supported)
	if err != nil {
		return err
	}
	cfg.RootDir = strings.TrimSpace(input.RootDir)
	cfg.Creator = strings.TrimSpace(input.Creator)
	cfg.Installer = strings.TrimSpace(input.Installer)

	root := expandHome(cfg.RootDir, r.home())
	if err := r.Fs.MkdirAll(root, 0755); err != nil {
		return fmt.Errorf("setup: 루트 디렉토리 생성 실패: %w", err)
	}

	if err := config.Save(r.CfgPath, cfg); err != nil {
		return err
	}
	fmt.Fprintf(r.out(), "설정 파일이 저장되었습니다: %s\n", r.CfgPath)

	rcPath := ""
	if input.Shell != "" {
		rcPath = ShellRCPath(input.Shell, r.home())
		if err := InstallShellHook(r.Fs, input.Shell, rcPath); err != nil {
			fmt.Fprintf(r.out(), "경고: 셸 통합 설치 실패: %v\n", err)
		} else {
			fmt.Fprintf(r.out(), "셸 통합이 설치되었습니다: %s\n", rcPath)
		}
	}

	r.runDoctor(ctx, cfg, root, rcPath)
	return nil
}

// runDoctor는 설정 완료 후 환경 진단을 실행한다.
func (r *Runner) runDoctor(ctx context.Context, cfg *config.Config, root, rcPath string) {
	fmt.Fprintln(r.out(), "\n환경 진단 실행 중...")
	results := doctor.RunAll(ctx, r.Commander, r.Fs, doctor.Target{
		Config:  cfg,
		RootDir: root,
		RCPath:  rcPath,
		Marker:  shell.Marker,
	})
	for _, res := range results {
		icon := "✓"
		if res.Status == doctor.StatusFail {
			icon = "✗"
		} else if res.Status == doctor.StatusWarn {
			icon = "!"
		}
		fmt.Fprintf(r.out(), "  [%s] %s: %s\n", icon, res.Name, res.Message)
		if res.Fix != "" {
			fmt.Fprintf(r.out(), "      Fix: %s\n", res.Fix)
		}
	}
}

func (r *Runner) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *Runner) home() string {
	if r.Home != "" {
		return r.Home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

func (r *Runner) shell() string {
	sh := r.Shell
	if sh == "" {
		sh = DetectShell()
	}
	if !shell.Valid(sh) {
		return ""
	}
	return sh
}

// expandHome은 앞의 ~를 home으로 바꾼다.
func expandHome(p, home string) string {
	if p == "~" {
		return home
	}
	if rest, ok := strings.CutPrefix(p, "~/"); ok {
		return filepath.Join(home, rest)
	}
	return p
}
