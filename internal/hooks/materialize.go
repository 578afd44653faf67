package hooks

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// EnsureOptions controls hook materialization.
type EnsureOptions struct {
	// Reinstall overwrites existing scripts with the templates.
	Reinstall bool
	// Prompt is the label written into the activate script. Defaults to the
	// environment name.
	Prompt string
}

// Ensure writes the default template for every lifecycle point whose script
// is missing under envDir. Existing scripts are left untouched unless
// opts.Reinstall is set, so user edits survive repeated activation.
func (l Layout) Ensure(fs afero.Fs, envDir string, opts EnsureOptions) error {
	if err := fs.MkdirAll(BinDir(envDir), 0755); err != nil {
		return fmt.Errorf("hooks.Ensure: %w", err)
	}

	name := filepath.Base(envDir)
	data := templateData{
		EnvDir:         envDir,
		EnvName:        name,
		Prompt:         opts.Prompt,
		PreDeactivate:  l.ScriptPath(envDir, PreDeactivate),
		PostDeactivate: l.ScriptPath(envDir, PostDeactivate),
	}
	if data.Prompt == "" {
		data.Prompt = name
	}

	for _, p := range Points {
		script := l.ScriptPath(envDir, p)
		if !opts.Reinstall {
			exists, err := afero.Exists(fs, script)
			if err != nil {
				return fmt.Errorf("hooks.Ensure: %w", err)
			}
			if exists {
				continue
			}
		}

		data.Hook = p
		content, err := render(data)
		if err != nil {
			return fmt.Errorf("hooks.Ensure: %s: %w", p, err)
		}
		if err := afero.WriteFile(fs, script, content, 0755); err != nil {
			return fmt.Errorf("hooks.Ensure: %w", err)
		}
	}
	return nil
}
