package setup

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/kballard/go-shellquote"
)

// HuhFormRunner는 charmbracelet/huh 기반의 FormRunner 구현이다.
type HuhFormRunner struct{}

var _ FormRunner = (*HuhFormRunner)(nil)

// validateCommand는 명령행이 셸 규칙으로 분리 가능하고 비어있지 않은지 확인한다.
func validateCommand(s string) error {
	argv, err := shellquote.Split(s)
	if err != nil {
		return fmt.Errorf("명령행을 해석할 수 없습니다: %v", err)
	}
	if len(argv) == 0 {
		return fmt.Errorf("명령을 입력하세요")
	}
	return nil
}

// RunSettingsForm은 설정 입력 폼을 실행한다.
func (h *HuhFormRunner) RunSettingsForm(defaults Input, shells []string) (*Input, error) {
	input := defaults

	shellOptions := make([]huh.Option[string], 0, len(shells)+1)
	for _, s := range shells {
		shellOptions = append(shellOptions, huh.NewOption(s, s))
	}
	shellOptions = append(shellOptions, huh.NewOption("설치하지 않음", ""))

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("가상환경 루트 디렉토리").
				Description("$WORKON_HOME이 없을 때 사용한다").
				Value(&input.RootDir).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().Title("생성 도구").
				Description("예: virtualenv, python3 -m venv").
				Value(&input.Creator).
				Validate(validateCommand),
			huh.NewInput().Title("패키지 설치 도구").
				Description("mkvirtualenv -i/-r에서 사용한다").
				Value(&input.Installer).
				Validate(validateCommand),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("셸 통합을 설치할 셸").
				Options(shellOptions...).
				Value(&input.Shell),
		),
	)
	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("setup.RunSettingsForm: %w", err)
	}
	return &input, nil
}

// RunConfirm은 확인 프롬프트를 표시한다.
func (h *HuhFormRunner) RunConfirm(message string) (bool, error) {
	var confirm bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().Title(message).Value(&confirm),
	))
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("setup.RunConfirm: %w", err)
	}
	return confirm, nil
}
