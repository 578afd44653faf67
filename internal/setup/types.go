package setup

// Input은 setup 폼에서 사용자가 입력한 값이다.
type Input struct {
	RootDir   string
	Creator   string
	Installer string
	// Shell은 셸 통합을 설치할 셸이다. 비어있으면 설치하지 않는다.
	Shell string
}

// FormRunner는 TUI 폼 실행을 추상화하는 interface다.
// 프로덕션에서는 huh 기반 구현, 테스트에서는 mock을 사용한다.
type FormRunner interface {
	// RunSettingsForm은 설정 입력 폼을 실행한다. defaults를 기본값으로 표시한다.
	RunSettingsForm(defaults Input, shells []string) (*Input, error)

	// RunConfirm은 확인 프롬프트를 표시한다.
	RunConfirm(message string) (bool, error)
}
