package cli

// ExitCode는 vew의 종료 코드다.
type ExitCode int

const (
	// ExitSuccess는 정상 종료다.
	ExitSuccess ExitCode = 0
	// ExitGeneral는 모든 에러다. 셸 함수는 0과 1만 구분한다.
	ExitGeneral ExitCode = 1
)

// MapExitCode는 에러를 종료 코드로 변환한다.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	return ExitGeneral
}
