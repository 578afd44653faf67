package shell

import (
	"fmt"
	"os"
	"strings"

	"github.com/hbjs97/vew/internal/hooks"
	"github.com/hbjs97/vew/internal/session"
	"github.com/kballard/go-shellquote"
)

// Supported는 Render와 HookSnippet이 지원하는 셸 목록이다.
var Supported = []string{"bash", "zsh", "fish"}

// Marker는 rc 파일 안의 연동 블록을 식별한다.
const Marker = "vew shell integration"

// wrapped 명령은 호출한 셸을 바꾸므로 출력을 eval한다.
var wrapped = []string{
	"workon", "mkvirtualenv", "rmvirtualenv", "cpvirtualenv", "showvirtualenv",
	"cdproject", "cdvirtualenv", "cdsitepackages",
}

// passthrough 명령은 출력만 하므로 stdout을 그대로 둔다.
var passthrough = []string{"lsvirtualenv"}

// Valid는 shellType이 지원되는 셸인지 보고한다.
func Valid(shellType string) bool {
	for _, s := range Supported {
		if s == shellType {
			return true
		}
	}
	return false
}

// Render는 c를 적용하는 셸 코드를 생성한다. 함수는 먼저 제거하고
// 마지막에 정의하므로 함수 본문은 최종 환경을 본다.
func Render(c session.Changes, shellType string) string {
	var b strings.Builder
	fish := shellType == "fish"

	for _, name := range c.Unregistered {
		if fish {
			fmt.Fprintf(&b, "functions -e %s\n", name)
		} else {
			fmt.Fprintf(&b, "unset -f %s 2>/dev/null\n", name)
		}
	}
	for _, k := range c.Unset {
		if !hooks.ValidName(k) {
			continue
		}
		if fish {
			fmt.Fprintf(&b, "set -e %s\n", k)
		} else {
			fmt.Fprintf(&b, "unset %s\n", k)
		}
	}
	for _, k := range c.SetKeys() {
		if !hooks.ValidName(k) {
			continue
		}
		v := c.Set[k]
		switch {
		case fish && k == "PATH":
			fmt.Fprintf(&b, "set -gx PATH %s\n", fishList(strings.Split(v, string(os.PathListSeparator))))
		case fish:
			fmt.Fprintf(&b, "set -gx %s %s\n", k, fishQuote(v))
		default:
			fmt.Fprintf(&b, "export %s=%s\n", k, shellquote.Join(v))
		}
	}
	if c.Dir != "" {
		if fish {
			fmt.Fprintf(&b, "cd %s\n", fishQuote(c.Dir))
		} else {
			fmt.Fprintf(&b, "cd -- %s\n", shellquote.Join(c.Dir))
		}
	}
	for _, cmd := range c.Registered {
		b.WriteString(function(cmd.Name, shellType))
	}
	return b.String()
}

// function은 name을 _vew 래퍼 호출로 정의한다.
func function(name, shellType string) string {
	if shellType == "fish" {
		return fmt.Sprintf("function %s; _vew %s $argv; end\n", name, name)
	}
	return fmt.Sprintf("%s() { _vew %s \"$@\"; }\n", name, name)
}

// HookSnippet는 exe 바이너리를 호출하는 shellType용 래퍼 함수를 반환한다.
// 부모 셸에서 물려받은 활성 환경에는 deactivate 함수를 다시 정의한다.
func HookSnippet(shellType, exe string) string {
	var b strings.Builder
	switch shellType {
	case "bash", "zsh":
		fmt.Fprintf(&b, `# %s (%s)
_vew() {
  local _vew_code _vew_status
  _vew_code="$(command %s --shell %s "$@")"
  _vew_status=$?
  eval "$_vew_code"
  return $_vew_status
}
`, Marker, shellType, shellquote.Join(exe), shellType)
		for _, name := range wrapped {
			b.WriteString(function(name, shellType))
		}
		for _, name := range passthrough {
			fmt.Fprintf(&b, "%s() { command %s %s \"$@\"; }\n", name, shellquote.Join(exe), name)
		}
		fmt.Fprintf(&b, "if [ -n \"${%s:-}\" ]; then\n  %sfi\n",
			session.DeactivateVar, function(session.DeactivateCommand, shellType))
	case "fish":
		fmt.Fprintf(&b, `# %s (fish)
function _vew
  set -l _vew_code (command %s --shell fish $argv | string collect)
  set -l _vew_status $pipestatus[1]
  eval $_vew_code
  return $_vew_status
end
`, Marker, fishQuote(exe))
		for _, name := range wrapped {
			b.WriteString(function(name, shellType))
		}
		for _, name := range passthrough {
			fmt.Fprintf(&b, "function %s; command %s %s $argv; end\n", name, fishQuote(exe), name)
		}
		fmt.Fprintf(&b, "if set -q %s\n  %send\n",
			session.DeactivateVar, function(session.DeactivateCommand, shellType))
	default:
		return ""
	}
	return b.String()
}

// fishQuote는 s를 fish용 작은따옴표로 감싼다. fish에서는 \와 '만 특수 문자다.
func fishQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
	return "'" + r.Replace(s) + "'"
}

func fishList(items []string) string {
	quoted := make([]string, 0, len(items))
	for _, it := range items {
		if it == "" {
			continue
		}
		quoted = append(quoted, fishQuote(it))
	}
	return strings.Join(quoted, " ")
}
