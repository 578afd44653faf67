package cli

import (
	"context"

	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/cobra"
)

func (a *App) newLsvirtualenvCmd() *cobra.Command {
	var brief, long bool

	cmd := &cobra.Command{
		Use:   "lsvirtualenv [-b|-l]",
		Short: "가상환경 목록을 출력한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.List(ctx, s, !brief)
			})
		},
	}
	cmd.Flags().BoolVarP(&brief, "brief", "b", false, "이름만 출력")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "get_env_details hook 결과와 함께 출력 (기본값)")
	cmd.MarkFlagsMutuallyExclusive("brief", "long")
	return cmd
}

func (a *App) newShowvirtualenvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "showvirtualenv [name]",
		Short: "가상환경 상세 정보를 출력한다 (이름이 없으면 활성 환경)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.Show(ctx, s, name)
			})
		},
	}
}
