package hooks

import (
	"strings"
	"text/template"
)

// PromptAssignment prefixes the line of the activate script that stores the
// prompt label.
const PromptAssignment = "VIRTUAL_ENV_PROMPT="

// templateData fills the hook templates.
type templateData struct {
	EnvDir         string
	EnvName        string
	Hook           Point
	Prompt         string
	PreDeactivate  string
	PostDeactivate string
}

var funcs = template.FuncMap{"q": Quote}

var activateTmpl = template.Must(template.New("activate").Funcs(funcs).Parse(`# vew {{.Hook}} hook for {{.EnvName}}
# Sourced on workon. Rewritten only by workon --reinstall.

VIRTUAL_ENV={{q .EnvDir}}
export VIRTUAL_ENV
` + PromptAssignment + `{{q .Prompt}}
export VIRTUAL_ENV_PROMPT

PATH="$VIRTUAL_ENV/bin${PATH:+:$PATH}"
export PATH

if [ -n "${PYTHONHOME+set}" ]; then
    _OLD_VIRTUAL_PYTHONHOME="$PYTHONHOME"
    export _OLD_VIRTUAL_PYTHONHOME
    unset PYTHONHOME
fi

# registers the deactivate command: predeactivate:postdeactivate
_VIRTUALENVWRAPPER_DEACTIVATE={{q .PreDeactivate}}:{{q .PostDeactivate}}
export _VIRTUALENVWRAPPER_DEACTIVATE
`))

var basicTmpl = template.Must(template.New("basic").Funcs(funcs).Parse(`# vew {{.Hook}} hook for {{.EnvName}}
printf '%s\n' {{q (printf "-- %s %s" .EnvName .Hook)}}
`))

func render(data templateData) ([]byte, error) {
	t := basicTmpl
	if data.Hook == Activate {
		t = activateTmpl
	}
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

// Quote single-quotes s for a POSIX shell.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
