package doctor

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hbjs97/vew/internal/cmdexec"
	"github.com/hbjs97/vew/internal/config"
	"github.com/spf13/afero"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// MinVirtualenv는 --prompt를 지원하는 virtualenv 최소 버전이다.
const MinVirtualenv = "20.0.0"

var versionRegex = regexp.MustCompile(`\d+\.\d+(?:\.\d+)?`)

// ParseToolVersion은 `<tool> --version` 출력에서 첫 번째 버전 번호를 찾는다.
func ParseToolVersion(out string) (*semver.Version, error) {
	raw := versionRegex.FindString(out)
	if raw == "" {
		return nil, fmt.Errorf("doctor.ParseToolVersion: 버전 정보 없음: %q", strings.TrimSpace(out))
	}
	return semver.NewVersion(raw)
}

// CheckCreator는 가상환경 생성 도구의 존재와 버전을 확인한다.
func CheckCreator(ctx context.Context, cmd cmdexec.Commander, argv []string) DiagResult {
	name := strings.Join(argv, " ")
	out, err := run(ctx, cmd, argv, "--version")
	if err != nil {
		return DiagResult{
			Name:    "creator",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 실행 실패", name),
			Fix:     "pip install --user virtualenv 또는 config.toml의 creator 수정",
		}
	}

	msg := strings.TrimSpace(string(out))
	if filepath.Base(argv[0]) != "virtualenv" {
		return DiagResult{Name: "creator", Status: StatusOK, Message: msg}
	}

	v, err := ParseToolVersion(msg)
	if err != nil {
		return DiagResult{Name: "creator", Status: StatusWarn, Message: err.Error()}
	}
	minimum, _ := semver.NewConstraint(">= " + MinVirtualenv)
	if !minimum.Check(v) {
		return DiagResult{
			Name:    "creator",
			Status:  StatusWarn,
			Message: fmt.Sprintf("virtualenv %s는 --prompt를 지원하지 않을 수 있음", v),
			Fix:     fmt.Sprintf("virtualenv %s 이상으로 업그레이드", MinVirtualenv),
		}
	}
	return DiagResult{Name: "creator", Status: StatusOK, Message: msg}
}

// CheckInstaller는 패키지 설치 도구를 확인한다.
// 가상환경 안의 도구를 쓰므로 전역에 없으면 경고만 한다.
func CheckInstaller(ctx context.Context, cmd cmdexec.Commander, argv []string) DiagResult {
	out, err := run(ctx, cmd, argv, "--version")
	if err != nil {
		return DiagResult{
			Name:    "installer",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 없음 (가상환경 밖)", strings.Join(argv, " ")),
			Fix:     "mkvirtualenv -i/-r은 가상환경 안의 installer를 사용한다",
		}
	}
	return DiagResult{Name: "installer", Status: StatusOK, Message: strings.TrimSpace(string(out))}
}

// CheckHookShell은 hook을 source할 셸이 실행 가능한지 확인한다.
func CheckHookShell(ctx context.Context, cmd cmdexec.Commander, argv []string) DiagResult {
	if _, err := run(ctx, cmd, argv, "-c", "exit 0"); err != nil {
		return DiagResult{
			Name:    "hook_shell",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 실행 실패", strings.Join(argv, " ")),
			Fix:     "config.toml의 hook_shell을 POSIX 셸로 설정",
		}
	}
	return DiagResult{Name: "hook_shell", Status: StatusOK, Message: strings.Join(argv, " ")}
}

// CheckRootDir는 가상환경 루트 디렉토리를 확인한다.
func CheckRootDir(fs afero.Fs, dir string) DiagResult {
	ok, err := afero.IsDir(fs, dir)
	if err != nil || !ok {
		return DiagResult{
			Name:    "root_dir",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 없음", dir),
			Fix:     fmt.Sprintf("mkdir -p %s 또는 vew setup 실행", dir),
		}
	}
	return DiagResult{Name: "root_dir", Status: StatusOK, Message: dir}
}

// CheckShellIntegration은 RC 파일에 vew 셸 통합이 설치되었는지 확인한다.
func CheckShellIntegration(fs afero.Fs, rcPath, marker string) DiagResult {
	if rcPath == "" {
		return DiagResult{
			Name:    "shell",
			Status:  StatusWarn,
			Message: "지원하지 않는 셸",
			Fix:     "bash, zsh, fish 중 하나에서 eval \"$(vew init <shell>)\" 실행",
		}
	}
	data, err := afero.ReadFile(fs, rcPath)
	if err != nil || !strings.Contains(string(data), marker) {
		return DiagResult{
			Name:    "shell",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s에 셸 통합 없음", rcPath),
			Fix:     "vew setup 실행",
		}
	}
	return DiagResult{Name: "shell", Status: StatusOK, Message: rcPath}
}

func run(ctx context.Context, cmd cmdexec.Commander, argv []string, extra ...string) ([]byte, error) {
	args := append(append([]string{}, argv[1:]...), extra...)
	return cmd.Run(ctx, argv[0], args...)
}

// Target은 RunAll이 진단할 대상이다.
type Target struct {
	Config  *config.Config
	RootDir string
	RCPath  string
	Marker  string
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, fs afero.Fs, t Target) []DiagResult {
	return []DiagResult{
		CheckCreator(ctx, cmd, t.Config.CreatorCommand()),
		CheckInstaller(ctx, cmd, t.Config.InstallerCommand()),
		CheckHookShell(ctx, cmd, t.Config.HookShellCommand()),
		CheckRootDir(fs, t.RootDir),
		CheckShellIntegration(fs, t.RCPath, t.Marker),
	}
}

// Failed는 StatusFail 결과가 있는지 반환한다.
func Failed(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}
