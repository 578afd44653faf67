package venv

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
)

// MakeOptions는 Make의 옵션이다.
type MakeOptions struct {
	Name         string
	ProjectPath  string
	Packages     []string
	Requirements []string
	Prompt       string
	// ToolArgs는 환경 경로 앞에 붙여 생성 도구에 넘긴다.
	ToolArgs []string
}

// ParseMakeArgs는 mkvirtualenv 인자를 자체 옵션과 생성 도구로 넘길 인자로
// 나눈다. 이름은 남은 인자 중 첫 번째이며, 그것이 플래그처럼 보이면
// 마지막 인자다.
func ParseMakeArgs(args []string) (MakeOptions, error) {
	var opts MakeOptions
	var rest []string

	for i := 0; i < len(args); i++ {
		arg := args[i]
		value := func(flag string) (string, error) {
			if v, ok := strings.CutPrefix(arg, flag+"="); ok && strings.HasPrefix(flag, "--") {
				return v, nil
			}
			if arg != flag {
				return strings.TrimPrefix(arg, flag), nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%w: flag needs an argument: %s", ErrPrecondition, flag)
			}
			i++
			return args[i], nil
		}

		var err error
		switch {
		case arg == "--prompt" || strings.HasPrefix(arg, "--prompt="):
			opts.Prompt, err = value("--prompt")
		case strings.HasPrefix(arg, "-a"):
			opts.ProjectPath, err = value("-a")
		case strings.HasPrefix(arg, "-i"):
			var v string
			v, err = value("-i")
			opts.Packages = append(opts.Packages, v)
		case strings.HasPrefix(arg, "-r"):
			var v string
			v, err = value("-r")
			opts.Requirements = append(opts.Requirements, v)
		default:
			rest = append(rest, arg)
		}
		if err != nil {
			return MakeOptions{}, err
		}
	}

	if len(rest) == 0 {
		return MakeOptions{}, fmt.Errorf("%w: virtualenv name is required", ErrPrecondition)
	}
	if !strings.HasPrefix(rest[0], "-") {
		opts.Name, opts.ToolArgs = rest[0], rest[1:]
	} else {
		opts.Name, opts.ToolArgs = rest[len(rest)-1], rest[:len(rest)-1]
	}
	return opts, nil
}

// Make는 설정된 생성 도구로 새 환경을 만들고 활성화한 뒤 요청한 패키지를
// 설치한다.
func (m *Manager) Make(ctx context.Context, s *session.State, opts MakeOptions) error {
	if err := validName(opts.Name); err != nil {
		return err
	}
	root, err := m.RootDir(s)
	if err != nil {
		return err
	}
	envDir := filepath.Join(root, opts.Name)
	if m.exists(envDir) {
		return fmt.Errorf("venv.Make: %w: virtualenv exists: %s", ErrPrecondition, envDir)
	}
	if opts.ProjectPath != "" && !m.isDir(absPath(s, opts.ProjectPath)) {
		return fmt.Errorf("venv.Make: %w: cannot associate project with %s, it is not a directory", ErrPrecondition, opts.ProjectPath)
	}

	creator := m.Config.CreatorCommand()
	args := append([]string{}, creator[1:]...)
	args = append(args, opts.ToolArgs...)
	if opts.Prompt != "" {
		args = append(args, "--prompt="+opts.Prompt)
	}
	args = append(args, envDir)

	var stderr bytes.Buffer
	err = m.Commander.RunInteractive(ctx, cmdexec.Options{
		Env:    s.Environ(),
		Dir:    s.Dir,
		Stdout: m.Out,
		Stderr: io.MultiWriter(m.errOut(), &stderr),
	}, m.lookPath(s, creator[0]), args...)
	if err != nil {
		return fmt.Errorf("venv.Make: %w: %w", ErrExternalTool, &cmdexec.ExitError{
			Name: creator[0],
			Code: cmdexec.ExitCode(err),
			Text: strings.TrimSpace(stderr.String()),
		})
	}

	if err := m.activate(ctx, s, envDir, ActivateOptions{Prompt: opts.Prompt}); err != nil {
		return err
	}
	if opts.ProjectPath != "" {
		if err := m.CdProject(ctx, s, CdProjectOptions{Set: opts.ProjectPath}); err != nil {
			return err
		}
	}

	for _, pkg := range opts.Packages {
		m.install(ctx, s, "install", "-U", pkg)
	}
	for _, req := range opts.Requirements {
		m.install(ctx, s, "install", "-r", req)
	}

	m.runHook(ctx, s, hooks.PostMkVirtualenv, envDir)
	return nil
}

// install은 방금 활성화한 세션 안에서 설치 도구를 실행한다. 실패는 로그로
// 남기고 생성은 실패시키지 않는다.
func (m *Manager) install(ctx context.Context, s *session.State, args ...string) {
	installer := m.Config.InstallerCommand()
	argv := append(append([]string{}, installer[1:]...), args...)
	err := m.Commander.RunInteractive(ctx, cmdexec.Options{
		Env:    s.Environ(),
		Dir:    s.Dir,
		Stdout: m.Out,
		Stderr: m.errOut(),
	}, m.lookPath(s, installer[0]), argv...)
	if err != nil {
		m.Logger.Error("install failed", "cmd", strings.Join(append([]string{installer[0]}, argv...), " "), "err", err)
	}
}

// lookPath는 이 프로세스가 아닌 세션의 PATH에서 name을 찾는다. 구분자가
// 들어 있거나 찾지 못한 이름은 그대로 반환한다.
func (m *Manager) lookPath(s *session.State, name string) string {
	if strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	for _, dir := range s.PathList() {
		if dir == "" {
			continue
		}
		p := filepath.Join(dir, name)
		info, err := m.Fs.Stat(p)
		if err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0 {
			return p
		}
	}
	return name
}
