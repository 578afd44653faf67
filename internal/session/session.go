// Package session models the process-wide state of an interactive shell as
// an explicit value. Transitions take a *State and mutate it; the caller
// diffs the before/after values and renders the difference for the host
// shell to evaluate.
package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DeactivateVar records the registered deactivate command across
// invocations. Its value is the predeactivate and postdeactivate script
// paths joined by the OS path-list separator.
const DeactivateVar = "_VIRTUALENVWRAPPER_DEACTIVATE"

// DeactivateCommand is the name of the command registered on activation.
const DeactivateCommand = "deactivate"

// Command is a dynamically registered shell command.
type Command struct {
	Name string
	// Hooks are the scripts the command runs, in order.
	Hooks []string
}

// State is the shell session as seen by a transition.
type State struct {
	Env      map[string]string
	Dir      string
	Commands map[string]Command
}

// New returns an empty State.
func New(dir string) *State {
	return &State{
		Env:      make(map[string]string),
		Dir:      dir,
		Commands: make(map[string]Command),
	}
}

// FromEnviron builds a State from KEY=VALUE pairs. The deactivate command is
// registered iff DeactivateVar is set and non-empty.
func FromEnviron(environ []string, dir string) *State {
	s := New(dir)
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}
		s.Env[k] = v
	}
	s.syncCommands()
	return s
}

// Current builds a State from the running process.
func Current() (*State, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return FromEnviron(os.Environ(), dir), nil
}

// syncCommands derives the command registry from the env marker.
func (s *State) syncCommands() {
	v := s.Env[DeactivateVar]
	if v == "" {
		delete(s.Commands, DeactivateCommand)
		return
	}
	s.Commands[DeactivateCommand] = Command{
		Name:  DeactivateCommand,
		Hooks: filepath.SplitList(v),
	}
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := New(s.Dir)
	for k, v := range s.Env {
		c.Env[k] = v
	}
	for k, v := range s.Commands {
		v.Hooks = append([]string(nil), v.Hooks...)
		c.Commands[k] = v
	}
	return c
}

// Getenv returns the value of key, or "" if unset.
func (s *State) Getenv(key string) string {
	return s.Env[key]
}

// LookupEnv reports whether key is set.
func (s *State) LookupEnv(key string) (string, bool) {
	v, ok := s.Env[key]
	return v, ok
}

// Setenv sets key to value.
func (s *State) Setenv(key, value string) {
	s.Env[key] = value
}

// Unsetenv removes key.
func (s *State) Unsetenv(key string) {
	delete(s.Env, key)
}

// Environ returns the environment as sorted KEY=VALUE pairs.
func (s *State) Environ() []string {
	keys := sortedKeys(s.Env)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+s.Env[k])
	}
	return out
}

// ExpandEnv expands $VAR, ${VAR} and a leading ~ against the session.
func (s *State) ExpandEnv(v string) string {
	v = os.Expand(v, s.Getenv)
	if v == "~" || strings.HasPrefix(v, "~/") {
		if home := s.Getenv("HOME"); home != "" {
			v = home + v[1:]
		}
	}
	return v
}

// PathList splits PATH.
func (s *State) PathList() []string {
	p := s.Env["PATH"]
	if p == "" {
		return nil
	}
	return filepath.SplitList(p)
}

// SetPathList joins entries into PATH.
func (s *State) SetPathList(entries []string) {
	s.Env["PATH"] = strings.Join(entries, string(os.PathListSeparator))
}

// PrependPath puts dir at the front of PATH.
func (s *State) PrependPath(dir string) {
	s.SetPathList(append([]string{dir}, s.PathList()...))
}

// RemovePathEntry removes the first occurrence of dir from PATH and reports
// whether it was present.
func (s *State) RemovePathEntry(dir string) bool {
	entries := s.PathList()
	for i, e := range entries {
		if filepath.Clean(e) == filepath.Clean(dir) {
			s.SetPathList(append(entries[:i:i], entries[i+1:]...))
			return true
		}
	}
	return false
}

// Register adds cmd to the command registry. Registering the deactivate
// command also records it in DeactivateVar.
func (s *State) Register(cmd Command) {
	s.Commands[cmd.Name] = cmd
	if cmd.Name == DeactivateCommand {
		s.Env[DeactivateVar] = strings.Join(cmd.Hooks, string(os.PathListSeparator))
	}
}

// Unregister removes name from the command registry.
func (s *State) Unregister(name string) {
	delete(s.Commands, name)
	if name == DeactivateCommand {
		delete(s.Env, DeactivateVar)
	}
}

// Registered reports whether name is in the command registry.
func (s *State) Registered(name string) bool {
	_, ok := s.Commands[name]
	return ok
}

// Lookup returns the registered command.
func (s *State) Lookup(name string) (Command, bool) {
	c, ok := s.Commands[name]
	return c, ok
}

// Adopt replaces the environment and directory with those of next, as left
// behind by a hook script, and re-derives the command registry.
func (s *State) Adopt(next *State) {
	s.Env = make(map[string]string, len(next.Env))
	for k, v := range next.Env {
		s.Env[k] = v
	}
	if next.Dir != "" {
		s.Dir = next.Dir
	}
	s.syncCommands()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
