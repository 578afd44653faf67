package cli

import (
	"fmt"
	"io"

	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/doctor"
	"github.com/hbjs97/vew/internal/setup"
	"github.com/hbjs97/vew/internal/shell"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd)
		},
	}
}

func (a *App) runDoctor(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()

	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		fmt.Fprintf(out, "  [FAIL] config: %v\n", err)
		fmt.Fprintln(out, "      Fix: vew setup 실행 또는 설정 파일 확인")
		cfg = config.Default()
	}

	s, err := a.session()
	if err != nil {
		return err
	}
	m := &venv.Manager{Fs: a.fs(), Config: cfg, Logger: a.Logger}
	// RootDir은 기본 루트를 세션에 기록하므로 복사본을 넘긴다.
	root, err := m.RootDir(s.Clone())
	if err != nil {
		root = s.ExpandEnv(cfg.RootDir)
	}

	rcPath := ""
	if sh := setup.DetectShell(); shell.Valid(sh) {
		rcPath = setup.ShellRCPath(sh, homeDir())
	}

	results := doctor.RunAll(cmd.Context(), a.Commander, a.fs(), doctor.Target{
		Config:  cfg,
		RootDir: root,
		RCPath:  rcPath,
		Marker:  shell.Marker,
	})
	printDiagResults(out, results)
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(w io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(w, "  [%s] %s: %s\n", statusIcon(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintf(w, "      Fix: %s\n", r.Fix)
		}
	}
}

func statusIcon(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return "OK"
	case doctor.StatusWarn:
		return "!!"
	case doctor.StatusFail:
		return "FAIL"
	default:
		return "??"
	}
}
