// Package execx runs external CLIs (gcloud, aws, az, kubectl, docker) in
// either interactive or captured mode.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"cloum/internal/domain"
)

// System executes real subprocesses. Interactive runs inherit the caller's
// standard streams so that provider login prompts (OAuth flows, device codes)
// reach the user directly; Captured runs drain both streams into the result.
// No timeout is enforced: a hung subprocess hangs the command until the user
// interrupts it.
type System struct{}

// NewSystem creates a runner backed by os/exec.
func NewSystem() *System {
	return &System{}
}

// Interactive spawns the command with inherited stdin/stdout/stderr and
// returns the exit code with empty captured output.
func (r *System) Interactive(ctx context.Context, name string, args ...string) (domain.CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return finish(cmd, name, nil, nil)
}

// InteractiveEnv is Interactive with additional environment variables merged
// over the inherited environment. Used to select an AWS profile without
// mutating global CLI state.
func (r *System) InteractiveEnv(ctx context.Context, env map[string]string, name string, args ...string) (domain.CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = mergeEnv(env)

	return finish(cmd, name, nil, nil)
}

// Captured spawns the command with piped streams and fully drains both into
// the result. Used for status probes and value extraction.
func (r *System) Captured(ctx context.Context, name string, args ...string) (domain.CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	return finish(cmd, name, &stdout, &stderr)
}

// CapturedEnv is Captured with additional environment variables merged over
// the inherited environment.
func (r *System) CapturedEnv(ctx context.Context, env map[string]string, name string, args ...string) (domain.CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = mergeEnv(env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	return finish(cmd, name, &stdout, &stderr)
}

// CapturedWithStdin is Captured with the given text piped to the command's
// standard input. Used to feed a registry password into docker login.
func (r *System) CapturedWithStdin(ctx context.Context, stdin, name string, args ...string) (domain.CommandResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = bytes.NewBufferString(stdin)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	return finish(cmd, name, &stdout, &stderr)
}

func finish(cmd *exec.Cmd, name string, stdout, stderr *bytes.Buffer) (domain.CommandResult, error) {
	runErr := cmd.Run()

	result := domain.CommandResult{}
	if stdout != nil {
		result.Stdout = stdout.String()
	}
	if stderr != nil {
		result.Stderr = stderr.String()
	}

	if runErr == nil {
		return result, nil
	}

	var exitErr *exec.ExitError
	if errors.As(runErr, &exitErr) {
		result.ExitCode = exitErr.ExitCode()
		return result, nil
	}

	// Spawn failures (binary not on PATH, permission problems) never reach
	// the child, so there is no exit code to report.
	result.ExitCode = -1
	return result, fmt.Errorf("failed to run %s: %w", name, runErr)
}

func mergeEnv(extra map[string]string) []string {
	env := os.Environ()
	for key, value := range extra {
		env = append(env, key+"="+value)
	}
	return env
}

// IsNotInstalled reports whether the error indicates the executable was not
// found on PATH.
func IsNotInstalled(err error) bool {
	return errors.Is(err, exec.ErrNotFound)
}
