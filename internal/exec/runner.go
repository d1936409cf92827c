// Package exec provides a seam for running external commands.
// All external tool invocations go through CommandRunner so tests can
// substitute a fake.
package exec

import (
	"bytes"
	"context"
	"os/exec"
)

// RunOpts holds optional settings for a command invocation.
type RunOpts struct {
	// Dir is the working directory for the command. Empty means inherit.
	Dir string

	// Env is the environment for the command. Nil means inherit.
	Env []string
}

// Result holds the outcome of a completed command.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner runs external commands.
// A non-nil error means the command could not be executed at all
// (binary not found, context canceled). A command that ran and exited
// non-zero is reported through Result.ExitCode, not through error.
type CommandRunner interface {
	Run(ctx context.Context, name string, args []string, opts RunOpts) (Result, error)
}

// RealRunner is the os/exec-backed CommandRunner.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// Run implements CommandRunner.
func (r *RealRunner) Run(ctx context.Context, name string, args []string, opts RunOpts) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = opts.Dir
	if opts.Env != nil {
		cmd.Env = opts.Env
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}

	return result, nil
}
