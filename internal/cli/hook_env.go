package cli

import (
	"fmt"
	"os"

	"github.com/hbjs97/vew/internal/hooks"
	"github.com/spf13/cobra"
)

// newHookEnvCmd는 hook 실행 직후의 환경을 덤프한다. hooks.ShellRunner가 호출한다.
func (a *App) newHookEnvCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "hook-env",
		Short:  "현재 프로세스 환경을 덤프한다 (내부용)",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("cli.hook-env: %w", err)
			}
			return hooks.WriteDump(cmd.OutOrStdout(), os.Environ(), cwd)
		},
	}
}
