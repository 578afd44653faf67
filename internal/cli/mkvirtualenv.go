package cli

import (
	"context"

	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/cobra"
)

func (a *App) newMkvirtualenvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mkvirtualenv [-a project_path] [-i package] [-r requirements_file] [--prompt label] [tool options] name",
		Short: "가상환경을 생성하고 활성화한다",
		Long: `가상환경을 생성하고 활성화한다.

  -a project_path       프로젝트 디렉토리를 연결한다
  -i package            생성 후 패키지를 설치한다 (반복 가능)
  -r requirements_file  생성 후 requirements 파일을 설치한다 (반복 가능)
  --prompt label        프롬프트 레이블

나머지 옵션은 생성 도구(creator)에 그대로 전달된다.`,
		// 생성 도구의 옵션을 그대로 넘기기 위해 직접 파싱한다.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if arg == "-h" || arg == "--help" {
					return cmd.Help()
				}
			}
			opts, err := venv.ParseMakeArgs(args)
			if err != nil {
				return err
			}
			return a.transition(cmd, func(ctx context.Context, m *venv.Manager, s *session.State) error {
				return m.Make(ctx, s, opts)
			})
		},
	}
}
