package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/logger"
	"github.com/hbjs97/vew/internal/session"
	"github.com/hbjs97/vew/internal/setup"
	"github.com/hbjs97/vew/internal/shell"
	"github.com/hbjs97/vew/internal/venv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// App은 CLI 명령들이 공유하는 의존성을 담는다.
// 비어있는 필드는 실행 시점에 프로덕션 구현으로 채워진다.
type App struct {
	Commander  cmdexec.Commander
	CfgPath    string
	Fs         afero.Fs
	Runner     hooks.Runner
	FormRunner setup.FormRunner
	Logger     *log.Logger
	// Session은 현재 셸 세션을 반환한다. 테스트에서 주입한다.
	Session func() (*session.State, error)
	// Exe는 wrapper 함수와 hook runner가 호출할 vew 실행 파일 경로다.
	Exe string

	shellType string
	verbose   bool
}

// NewRootCmd는 vew CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "vew",
		Short:        "Python 가상환경 래퍼",
		SilenceUsage: true,
		// mkvirtualenv가 자체 플래그 파싱을 하므로 루트 플래그는 하위 명령 앞에서 파싱한다.
		TraverseChildren: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if a.shellType != "" && !shell.Valid(a.shellType) {
				return fmt.Errorf("cli: 지원하지 않는 셸입니다: %s (bash, zsh, fish)", a.shellType)
			}
			if a.Logger == nil {
				a.Logger = logger.New(cmd.ErrOrStderr())
			}
			logger.Configure(a.Logger, a.verbose)
			return nil
		},
	}

	defaultCfg := a.CfgPath
	if defaultCfg == "" {
		defaultCfg = filepath.Join(homeDir(), ".config", "vew", "config.toml")
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "설정 파일 경로")
	cmd.PersistentFlags().BoolVar(&a.verbose, "verbose", false, "상세 출력")
	cmd.PersistentFlags().StringVar(&a.shellType, "shell", "", "세션 변경을 셸 코드로 출력 (bash, zsh, fish)")

	cmd.AddCommand(
		a.newWorkonCmd(),
		a.newDeactivateCmd(),
		a.newMkvirtualenvCmd(),
		a.newRmvirtualenvCmd(),
		a.newCpvirtualenvCmd(),
		a.newLsvirtualenvCmd(),
		a.newShowvirtualenvCmd(),
		a.newCdprojectCmd(),
		a.newCdvirtualenvCmd(),
		a.newCdsitepackagesCmd(),
		a.newInitCmd(),
		a.newSetupCmd(),
		a.newDoctorCmd(),
		a.newPromptCmd(),
		a.newHookEnvCmd(),
	)
	return cmd
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "경고: 홈 디렉토리 확인 실패: %v\n", err)
		return "."
	}
	return home
}

func (a *App) exe() string {
	if a.Exe != "" {
		return a.Exe
	}
	exe, err := os.Executable()
	if err != nil {
		return "vew"
	}
	return exe
}

func (a *App) fs() afero.Fs {
	if a.Fs == nil {
		a.Fs = afero.NewOsFs()
	}
	return a.Fs
}

func (a *App) session() (*session.State, error) {
	if a.Session != nil {
		return a.Session()
	}
	s, err := session.Current()
	if err != nil {
		return nil, fmt.Errorf("cli: 현재 디렉토리 확인 실패: %w", err)
	}
	return s, nil
}

// userOut은 사용자용 출력 대상이다. --shell이 주어지면 stdout은 셸 코드 전용이다.
func (a *App) userOut(cmd *cobra.Command) io.Writer {
	if a.shellType != "" {
		return cmd.ErrOrStderr()
	}
	return cmd.OutOrStdout()
}

// manager는 설정을 로드하고 venv.Manager를 구성한다.
func (a *App) manager(cmd *cobra.Command) (*venv.Manager, error) {
	cfg, err := config.Load(a.CfgPath)
	if err != nil {
		return nil, err
	}
	runner := a.Runner
	if runner == nil {
		runner = &hooks.ShellRunner{
			Commander: a.Commander,
			Shell:     cfg.HookShellCommand(),
			Dump:      []string{a.exe(), "hook-env"},
		}
	}
	return &venv.Manager{
		Fs:        a.fs(),
		Commander: a.Commander,
		Runner:    runner,
		Config:    cfg,
		Logger:    a.Logger,
		Out:       a.userOut(cmd),
		Err:       cmd.ErrOrStderr(),
	}, nil
}

// transition은 현재 세션에 fn을 적용하고, --shell이 주어지면 변경분을 셸 코드로 출력한다.
// fn이 실패해도 그 전까지의 변경은 출력한다.
func (a *App) transition(cmd *cobra.Command, fn func(ctx context.Context, m *venv.Manager, s *session.State) error) error {
	s, err := a.session()
	if err != nil {
		return err
	}
	m, err := a.manager(cmd)
	if err != nil {
		return err
	}

	before := s.Clone()
	runErr := fn(cmd.Context(), m, s)

	if a.shellType != "" {
		fmt.Fprint(cmd.OutOrStdout(), shell.Render(session.Diff(before, s), a.shellType))
	}
	return runErr
}
