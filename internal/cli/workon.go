package cli

import (
	"context"
	"fmt"

	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/cobra"
)

func (a *App) newWorkonCmd() *cobra.Command {
	var opts venv.ActivateOptions

	cmd := &cobra.Command{
		Use:   "workon [name]",
		Short: "가상환경을 활성화한다 (이름이 없으면 목록 출력)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.Workon(ctx, s, name, opts)
			})
		},
	}
	cmd.Flags().BoolVar(&opts.Reinstall, "reinstall", false, "hook 스크립트를 기본 템플릿으로 다시 생성")
	cmd.Flags().StringVar(&opts.Prompt, "prompt", "", "프롬프트 레이블")
	return cmd
}

func (a *App) newDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate",
		Short: "활성 가상환경을 비활성화한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				if !s.Registered(session.DeactivateCommand) {
					return fmt.Errorf("cli.deactivate: %w", venv.ErrNoActiveEnv)
				}
				return m.Deactivate(ctx, s)
			})
		},
	}
}
