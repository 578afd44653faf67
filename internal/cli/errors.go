package cli

import (
	"github.com/hbjs97/vew/internal/config"
	"github.com/hbjs97/vew/internal/venv"
)

// 각 도메인 패키지의 sentinel error를 CLI 레이어에서 편의상 re-export한다.
var (
	// ErrConfig는 설정 파일 또는 루트 디렉토리 오류를 나타내는 sentinel error다.
	ErrConfig = config.ErrConfig
	// ErrNotFound는 가상환경이나 프로젝트 경로가 없을 때의 sentinel error다.
	ErrNotFound = venv.ErrNotFound
	// ErrPrecondition는 명령의 사전 조건이 맞지 않을 때의 sentinel error다.
	ErrPrecondition = venv.ErrPrecondition
	// ErrNoActiveEnv는 활성 가상환경이 필요한 명령에서 활성 환경이 없을 때의 sentinel error다.
	ErrNoActiveEnv = venv.ErrNoActiveEnv
	// ErrExternalTool는 가상환경 생성 도구가 실패했을 때의 sentinel error다.
	ErrExternalTool = venv.ErrExternalTool
)
