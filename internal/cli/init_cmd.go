package cli

import (
	"fmt"

	"github.com/hbjs97/vew/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init <shell>",
		Short: "셸 통합 함수를 출력한다 (eval \"$(vew init zsh)\")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snippet := shell.HookSnippet(args[0], a.exe())
			if snippet == "" {
				return fmt.Errorf("cli.init: 지원하지 않는 셸입니다: %s (bash, zsh, fish)", args[0])
			}
			fmt.Fprint(cmd.OutOrStdout(), snippet)
			return nil
		},
	}
}
