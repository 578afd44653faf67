// Package prompt renders the "(label) " segment users put in their shell
// prompt while an environment is active.
package prompt

import (
	"path/filepath"
	"regexp"

	"github.com/charmbracelet/lipgloss"
	"github.com/hbjs97/vew/internal/session"
	"github.com/muesli/termenv"
)

// Options controls Segment.
type Options struct {
	// Color is a lipgloss color: an ANSI index ("5") or hex ("#ff8800").
	Color string
	// Force emits color even when the output is not a terminal, which is
	// the case inside $(...).
	Force bool
	// Shell wraps escape sequences so bash and zsh measure the prompt
	// correctly.
	Shell string
}

var escapeRegex = regexp.MustCompile("\x1b\\[[0-9;]*m")

// Label returns the prompt label of the active environment, or "".
func Label(s *session.State) string {
	env := s.Getenv("VIRTUAL_ENV")
	if env == "" {
		return ""
	}
	if p := s.Getenv("VIRTUAL_ENV_PROMPT"); p != "" {
		return p
	}
	return filepath.Base(env)
}

// Segment returns "(label) " for the active environment, or "" when none
// is active.
func Segment(s *session.State, r *lipgloss.Renderer, opts Options) string {
	label := Label(s)
	if label == "" {
		return ""
	}
	text := "(" + label + ")"
	if opts.Color == "" {
		return text + " "
	}

	if opts.Force {
		r.SetColorProfile(termenv.ANSI256)
	}
	text = r.NewStyle().Foreground(lipgloss.Color(opts.Color)).Render(text)

	switch opts.Shell {
	case "bash":
		text = escapeRegex.ReplaceAllString(text, `\[$0\]`)
	case "zsh":
		text = escapeRegex.ReplaceAllString(text, `%{$0%}`)
	}
	return text + " "
}
