package cli

import (
	"context"

	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/cobra"
)

func (a *App) newRmvirtualenvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rmvirtualenv name...",
		Short: "가상환경을 삭제한다",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.Remove(ctx, s, args...)
			})
		},
	}
}

func (a *App) newCpvirtualenvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cpvirtualenv src dst",
		Short: "가상환경을 복사한다",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.Copy(ctx, s, args[0], args[1])
			})
		},
	}
}
