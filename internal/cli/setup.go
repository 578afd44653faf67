package cli

import (
	"github.com/hbjs97/vew/internal/setup"
	"github.com/spf13/cobra"
)

func (a *App) newSetupCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "vew 초기 설정을 시작한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fr := a.FormRunner
			if fr == nil {
				fr = &setup.HuhFormRunner{}
			}
			r := &setup.Runner{
				CfgPath:    a.CfgPath,
				Commander:  a.Commander,
				FormRunner: fr,
				Fs:         a.fs(),
				Out:        cmd.OutOrStdout(),
				Force:      force,
			}
			return r.Run(cmd.Context())
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "기존 설정 파일 덮어쓰기 확인 생략")
	return cmd
}
