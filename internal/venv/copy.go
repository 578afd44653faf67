package venv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
	"github.com/spf13/afero"
)

// errNoSymlinks는 파일시스템이 심볼릭 링크를 보존하지 못할 때 반환된다.
var errNoSymlinks = errors.New("filesystem does not support symlinks")

// Copy는 src 환경을 dst로 복제한다. 복사도 생성으로 취급하므로 원본의
// 복사 hook과 생성 hook이 함께 실행된다. 대상의 activate 스크립트는 원본의
// 절대 경로를 담고 있어 다시 쓴다.
func (m *Manager) Copy(ctx context.Context, s *session.State, src, dst string) error {
	for _, name := range []string{src, dst} {
		if err := validName(name); err != nil {
			return err
		}
	}
	root, err := m.RootDir(s)
	if err != nil {
		return err
	}
	srcDir := filepath.Join(root, src)
	dstDir := filepath.Join(root, dst)
	if !m.exists(srcDir) {
		return fmt.Errorf("venv.Copy: %w: source env does not exist: %s", ErrNotFound, src)
	}
	if m.exists(dstDir) {
		return fmt.Errorf("venv.Copy: %w: destination env already exists: %s", ErrPrecondition, dst)
	}

	m.runHook(ctx, s, hooks.PreCpVirtualenv, srcDir)
	m.runHook(ctx, s, hooks.PreMkVirtualenv, srcDir)

	fmt.Fprintf(m.Out, "Copying %s as %s...\n", src, dst)
	if err := copyTree(m.Fs, srcDir, dstDir); err != nil {
		return fmt.Errorf("venv.Copy: %w", err)
	}
	if err := m.rewriteActivate(srcDir, dstDir); err != nil {
		return fmt.Errorf("venv.Copy: %w", err)
	}

	m.runHook(ctx, s, hooks.PostMkVirtualenv, srcDir)
	m.runHook(ctx, s, hooks.PostCpVirtualenv, srcDir)
	return nil
}

// rewriteActivate는 복사된 activate 스크립트가 dstDir을 가리키게 하고
// 프롬프트 라벨을 대상 이름으로 바꾼다.
func (m *Manager) rewriteActivate(srcDir, dstDir string) error {
	script := m.layout().ScriptPath(dstDir, hooks.Activate)
	info, err := m.Fs.Stat(script)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	data, err := afero.ReadFile(m.Fs, script)
	if err != nil {
		return err
	}

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	for i, line := range lines {
		// paths appear inside single quotes, escaped when they contain one
		line = strings.ReplaceAll(line, quotedBody(srcDir), quotedBody(dstDir))
		line = strings.ReplaceAll(line, srcDir, dstDir)
		if strings.HasPrefix(line, hooks.PromptAssignment) {
			line = hooks.PromptAssignment + hooks.Quote(filepath.Base(dstDir))
		}
		lines[i] = line
	}
	return afero.WriteFile(m.Fs, script, []byte(strings.Join(lines, "\n")+"\n"), info.Mode().Perm())
}

// quotedBody는 hooks.Quote가 만든 따옴표 안쪽의 p를 반환한다.
func quotedBody(p string) string {
	q := hooks.Quote(p)
	return q[1 : len(q)-1]
}

// copyTree는 src를 dst로 재귀 복사한다. 심볼릭 링크는 따라가지 않고
// 다시 만든다.
func copyTree(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case info.Mode()&os.ModeSymlink != 0:
			return copySymlink(fs, path, target)
		case info.IsDir():
			return fs.MkdirAll(target, info.Mode().Perm())
		case info.Mode().IsRegular():
			return copyFile(fs, path, target, info.Mode().Perm())
		default:
			// sockets, devices and pipes have no place in an environment
			return nil
		}
	})
}

func copySymlink(fs afero.Fs, src, dst string) error {
	reader, ok := fs.(afero.LinkReader)
	if !ok {
		return errNoSymlinks
	}
	linker, ok := fs.(afero.Linker)
	if !ok {
		return errNoSymlinks
	}
	link, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return err
	}
	return linker.SymlinkIfPossible(link, dst)
}

func copyFile(fs afero.Fs, src, dst string, perm os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
