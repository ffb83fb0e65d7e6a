// Package testutil provides test doubles shared across packages: a silent
// logger and a scripted CommandRunner that substitutes canned results for
// real subprocesses.
package testutil

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"cloum/internal/domain"
	"cloum/internal/logging"
)

// Logger returns a silent logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// Call records one invocation of the scripted runner.
type Call struct {
	Mode  string
	Name  string
	Args  []string
	Env   map[string]string
	Stdin string
}

// CommandLine renders the call as "name arg0 arg1 ...".
func (c Call) CommandLine() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Call modes.
const (
	ModeInteractive    = "interactive"
	ModeInteractiveEnv = "interactive-env"
	ModeCaptured       = "captured"
	ModeCapturedEnv    = "captured-env"
	ModeCapturedStdin  = "captured-stdin"
)

type response struct {
	result domain.CommandResult
	err    error
}

type stub struct {
	prefix string
	queue  []response
}

// next pops the next queued response; the final response sticks for all
// subsequent matches.
func (s *stub) next() response {
	r := s.queue[0]
	if len(s.queue) > 1 {
		s.queue = s.queue[1:]
	}
	return r
}

// ScriptRunner is a domain.CommandRunner returning canned results. Stubs are
// matched by command-line prefix in registration order; unmatched calls
// succeed with an empty result. Safe for concurrent use.
type ScriptRunner struct {
	mu    sync.Mutex
	stubs []stub
	calls []Call

	// BeforeReturn, when set, runs inside every call before its result is
	// returned. Used by concurrency tests to block in-flight calls.
	BeforeReturn func(Call)
}

// NewScriptRunner creates an empty scripted runner.
func NewScriptRunner() *ScriptRunner {
	return &ScriptRunner{}
}

// Stub registers a canned result for command lines starting with prefix.
func (r *ScriptRunner) Stub(prefix string, result domain.CommandResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = append(r.stubs, stub{prefix: prefix, queue: []response{{result: result}}})
}

// StubSeq registers a sequence of results for command lines starting with
// prefix: each match consumes the next result, and the last one sticks.
func (r *ScriptRunner) StubSeq(prefix string, results ...domain.CommandResult) {
	queue := make([]response, len(results))
	for i, result := range results {
		queue[i] = response{result: result}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = append(r.stubs, stub{prefix: prefix, queue: queue})
}

// StubError registers a spawn failure for command lines starting with prefix.
func (r *ScriptRunner) StubError(prefix string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stubs = append(r.stubs, stub{prefix: prefix, queue: []response{{err: err}}})
}

// Calls returns a copy of all recorded invocations in order.
func (r *ScriptRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// CommandLines returns the recorded invocations rendered as command lines.
func (r *ScriptRunner) CommandLines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, call := range calls {
		lines[i] = call.CommandLine()
	}
	return lines
}

func (r *ScriptRunner) dispatch(call Call) (domain.CommandResult, error) {
	r.mu.Lock()
	r.calls = append(r.calls, call)
	line := call.CommandLine()
	var resp *response
	for i := range r.stubs {
		if strings.HasPrefix(line, r.stubs[i].prefix) {
			next := r.stubs[i].next()
			resp = &next
			break
		}
	}
	hook := r.BeforeReturn
	r.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	if resp == nil {
		return domain.CommandResult{}, nil
	}
	return resp.result, resp.err
}

// Interactive implements domain.CommandRunner.
func (r *ScriptRunner) Interactive(_ context.Context, name string, args ...string) (domain.CommandResult, error) {
	return r.dispatch(Call{Mode: ModeInteractive, Name: name, Args: args})
}

// InteractiveEnv implements domain.CommandRunner.
func (r *ScriptRunner) InteractiveEnv(_ context.Context, env map[string]string, name string, args ...string) (domain.CommandResult, error) {
	return r.dispatch(Call{Mode: ModeInteractiveEnv, Name: name, Args: args, Env: env})
}

// Captured implements domain.CommandRunner.
func (r *ScriptRunner) Captured(_ context.Context, name string, args ...string) (domain.CommandResult, error) {
	return r.dispatch(Call{Mode: ModeCaptured, Name: name, Args: args})
}

// CapturedEnv implements domain.CommandRunner.
func (r *ScriptRunner) CapturedEnv(_ context.Context, env map[string]string, name string, args ...string) (domain.CommandResult, error) {
	return r.dispatch(Call{Mode: ModeCapturedEnv, Name: name, Args: args, Env: env})
}

// CapturedWithStdin implements domain.CommandRunner.
func (r *ScriptRunner) CapturedWithStdin(_ context.Context, stdin, name string, args ...string) (domain.CommandResult, error) {
	return r.dispatch(Call{Mode: ModeCapturedStdin, Name: name, Args: args, Stdin: stdin})
}
