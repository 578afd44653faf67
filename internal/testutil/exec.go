package testutil

import (
	"context"
	"fmt"
	"strings"

	"github.com/hbjs97/vew/internal/cmdexec"
)

// Response represents a pre-configured command response for FakeCommander.
type Response struct {
	Output []byte
	Err    error
}

// Action is invoked instead of a static Response. It receives the full
// argv (name first) and the options of the call.
type Action func(argv []string, opts cmdexec.Options) Response

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." format.
// If no exact match is found, it tries prefix matching.
type FakeCommander struct {
	// Responses maps command strings to their responses.
	// Key format: "command arg1 arg2" (e.g., "virtualenv --version", "pip install")
	Responses map[string]Response

	// Actions maps command strings to callbacks. Actions win over Responses
	// registered under the same key.
	Actions map[string]Action

	// Calls records all commands that were executed, in order.
	Calls []string

	// OptCalls records the Options passed to Output and RunInteractive, in order.
	OptCalls []cmdexec.Options

	// DefaultResponse is returned when no matching response is found.
	// If nil, an error is returned for unmatched commands.
	DefaultResponse *Response
}

var _ cmdexec.Commander = (*FakeCommander)(nil)

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]Response),
		Actions:   make(map[string]Action),
	}
}

// Register adds a response for the given command key.
func (c *FakeCommander) Register(key string, output string, err error) {
	c.Responses[key] = Response{
		Output: []byte(output),
		Err:    err,
	}
}

// RegisterAction adds a callback for the given command key.
func (c *FakeCommander) RegisterAction(key string, fn Action) {
	c.Actions[key] = fn
}

// Run looks up the command in Responses and returns the matching response.
func (c *FakeCommander) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	resp := c.dispatch(cmdexec.Options{}, name, args...)
	return resp.Output, resp.Err
}

// Output records opts and returns the matching response.
func (c *FakeCommander) Output(_ context.Context, opts cmdexec.Options, name string, args ...string) ([]byte, error) {
	c.OptCalls = append(c.OptCalls, opts)
	resp := c.dispatch(opts, name, args...)
	return resp.Output, resp.Err
}

// RunInteractive records opts and writes the matching response to opts.Stdout.
func (c *FakeCommander) RunInteractive(_ context.Context, opts cmdexec.Options, name string, args ...string) error {
	c.OptCalls = append(c.OptCalls, opts)
	resp := c.dispatch(opts, name, args...)
	if opts.Stdout != nil && len(resp.Output) > 0 {
		opts.Stdout.Write(resp.Output)
	}
	return resp.Err
}

func (c *FakeCommander) dispatch(opts cmdexec.Options, name string, args ...string) Response {
	fullCmd := name
	if len(args) > 0 {
		fullCmd = name + " " + strings.Join(args, " ")
	}

	c.Calls = append(c.Calls, fullCmd)
	argv := append([]string{name}, args...)

	// Exact match first.
	if fn, ok := c.Actions[fullCmd]; ok {
		return fn(argv, opts)
	}
	if resp, ok := c.Responses[fullCmd]; ok {
		return resp
	}

	// Try prefix matching (longest prefix wins).
	bestKey := ""
	for key := range c.Actions {
		if strings.HasPrefix(fullCmd, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	for key := range c.Responses {
		if strings.HasPrefix(fullCmd, key) && len(key) > len(bestKey) {
			bestKey = key
		}
	}
	if bestKey != "" {
		if fn, ok := c.Actions[bestKey]; ok {
			return fn(argv, opts)
		}
		return c.Responses[bestKey]
	}

	// Default response.
	if c.DefaultResponse != nil {
		return *c.DefaultResponse
	}

	return Response{Err: fmt.Errorf("FakeCommander: no response registered for %q", fullCmd)}
}

// Called returns true if a command matching the given prefix was executed.
func (c *FakeCommander) Called(prefix string) bool {
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// CallCount returns the number of times a command matching the given prefix was executed.
func (c *FakeCommander) CallCount(prefix string) int {
	count := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			count++
		}
	}
	return count
}
