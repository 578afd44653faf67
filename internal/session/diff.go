package session

import "sort"

// Changes is the difference between two States, in the order a shell
// should apply it.
type Changes struct {
	Set          map[string]string
	Unset        []string
	Dir          string // empty when unchanged
	Registered   []Command
	Unregistered []string
}

// Empty reports whether there is nothing to apply.
func (c Changes) Empty() bool {
	return len(c.Set) == 0 && len(c.Unset) == 0 && c.Dir == "" &&
		len(c.Registered) == 0 && len(c.Unregistered) == 0
}

// SetKeys returns the keys of Set, sorted.
func (c Changes) SetKeys() []string {
	return sortedKeys(c.Set)
}

// Diff computes what must change to turn before into after.
func Diff(before, after *State) Changes {
	c := Changes{Set: make(map[string]string)}
	for k, v := range after.Env {
		if old, ok := before.Env[k]; !ok || old != v {
			c.Set[k] = v
		}
	}
	for k := range before.Env {
		if _, ok := after.Env[k]; !ok {
			c.Unset = append(c.Unset, k)
		}
	}
	sort.Strings(c.Unset)

	if after.Dir != "" && after.Dir != before.Dir {
		c.Dir = after.Dir
	}

	for name, cmd := range after.Commands {
		if _, ok := before.Commands[name]; !ok {
			c.Registered = append(c.Registered, cmd)
		}
	}
	sort.Slice(c.Registered, func(i, j int) bool { return c.Registered[i].Name < c.Registered[j].Name })
	for name := range before.Commands {
		if _, ok := after.Commands[name]; !ok {
			c.Unregistered = append(c.Unregistered, name)
		}
	}
	sort.Strings(c.Unregistered)
	return c
}
