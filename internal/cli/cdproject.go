package cli

import (
	"context"

	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/cobra"
)

func (a *App) newCdprojectCmd() *cobra.Command {
	var opts venv.CdProjectOptions

	cmd := &cobra.Command{
		Use:   "cdproject",
		Short: "활성 가상환경의 프로젝트 디렉토리로 이동한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.CdProject(ctx, s, opts)
			})
		},
	}
	cmd.Flags().StringVar(&opts.Set, "set", "", "프로젝트 디렉토리를 지정")
	cmd.Flags().BoolVarP(&opts.Show, "show", "s", false, "프로젝트 디렉토리를 출력")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "프로젝트 미설정 메시지를 출력하지 않음")
	return cmd
}

func (a *App) newCdvirtualenvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cdvirtualenv",
		Short: "활성 가상환경 디렉토리로 이동한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.CdVirtualenv(ctx, s)
			})
		},
	}
}

func (a *App) newCdsitepackagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cdsitepackages",
		Short: "활성 가상환경의 site-packages로 이동한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.CdSitePackages(ctx, s)
			})
		},
	}
}
