package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/prompt"
	"github.com/spf13/cobra"
)

func (a *App) newPromptCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "프롬프트용 (label) 세그먼트를 출력한다",
		Long: `활성 가상환경의 프롬프트 세그먼트를 출력한다. 활성 환경이 없으면 아무것도 출력하지 않는다.

  PS1='$(vew --shell bash prompt --color)'"$PS1"

--shell을 주면 색상 escape를 해당 셸의 프롬프트 규칙으로 감싼다.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.CfgPath)
			if err != nil {
				return err
			}
			s, err := a.session()
			if err != nil {
				return err
			}
			r := lipgloss.NewRenderer(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), prompt.Segment(s, r, prompt.Options{
				Color: cfg.PromptColor,
				Force: force,
				Shell: a.shellType,
			}))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "color", false, "터미널이 아니어도 색상 출력")
	return cmd
}
