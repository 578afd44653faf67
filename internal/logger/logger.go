// Package logger configures the diagnostic logger shared by vew commands.
// Diagnostics always go to stderr so they never mix with shell code
// emitted on stdout.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// LevelEnv overrides the log level when no flag is given.
const LevelEnv = "VEW_LOG_LEVEL"

// New creates a logger writing to w without timestamps.
func New(w io.Writer) *log.Logger {
	l := log.NewWithOptions(w, log.Options{
		Prefix:          "vew",
		ReportTimestamp: false,
	})
	l.SetLevel(log.WarnLevel)
	return l
}

// Configure sets the level with precedence: verbose flag > env var > warn.
func Configure(l *log.Logger, verbose bool) {
	if verbose {
		l.SetLevel(log.DebugLevel)
		return
	}
	l.SetLevel(ParseLevel(os.Getenv(LevelEnv)))
}

// ParseLevel maps a level name to a log.Level, defaulting to warn.
func ParseLevel(s string) log.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return New(io.Discard)
}
