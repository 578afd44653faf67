package venv

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound는 지정한 환경이나 프로젝트 경로가 없을 때 반환된다.
	ErrNotFound = errors.New("not found")
	// ErrPrecondition은 대상이 이미 존재하는 등 작업의 전제 조건이
	// 맞지 않을 때 반환된다.
	ErrPrecondition = errors.New("precondition failed")
	// ErrNoActiveEnv는 활성 환경이 필요한 작업에서 활성 환경이 없을 때 반환된다.
	ErrNoActiveEnv = fmt.Errorf("%w: no virtualenv is active; see `workon --help` and `mkvirtualenv --help`", ErrPrecondition)
	// ErrExternalTool은 생성 도구가 0이 아닌 상태로 종료할 때 반환된다.
	ErrExternalTool = errors.New("external tool failed")
)
