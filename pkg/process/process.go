// Package process runs external programs synchronously and reports their
// exit status as data.
//
// A non-zero exit is not an error: it is returned in [Result.ExitCode].
// Run only fails when the program could not be started at all (not found,
// not executable, cancelled before start).
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Options control how a single process is wired to the caller's streams.
type Options struct {
	// Quiet discards stdout and stderr instead of inheriting them.
	Quiet bool

	// Capture collects stdout and stderr into Result.Output.
	// Capture takes precedence over Quiet.
	Capture bool

	// Dir is the working directory; empty means the caller's.
	Dir string
}

// Result holds the outcome of one process execution.
type Result struct {
	ExitCode int    // raw process exit code
	Output   []byte // combined stdout/stderr when Options.Capture was set
}

// Executor runs an argv to completion.
type Executor interface {
	Run(ctx context.Context, argv []string, opts Options) (*Result, error)
}

// Runner is the os/exec backed Executor.
type Runner struct {
	Stdout io.Writer // inherited stdout; os.Stdout when nil
	Stderr io.Writer // inherited stderr; os.Stderr when nil
}

// NewRunner returns a Runner inheriting the process' own streams.
func NewRunner() *Runner {
	return &Runner{Stdout: os.Stdout, Stderr: os.Stderr}
}

// Run executes argv and waits for it to terminate.
func (r *Runner) Run(ctx context.Context, argv []string, opts Options) (*Result, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty argv")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = opts.Dir

	var out bytes.Buffer
	switch {
	case opts.Capture:
		cmd.Stdout = &out
		cmd.Stderr = &out
	case opts.Quiet:
		cmd.Stdout = io.Discard
		cmd.Stderr = io.Discard
	default:
		cmd.Stdout = r.stdout()
		cmd.Stderr = r.stderr()
	}

	runErr := cmd.Run()

	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(runErr, &exitErr) {
			return nil, fmt.Errorf("executing %s: %w", argv[0], runErr)
		}
		exitCode = exitErr.ExitCode()
		if exitCode < 0 {
			// killed by a signal
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			exitCode = 1
		}
	}

	return &Result{ExitCode: exitCode, Output: out.Bytes()}, nil
}

func (r *Runner) stdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Runner) stderr() io.Writer {
	if r.Stderr == nil {
		return os.Stderr
	}
	return r.Stderr
}

var _ Executor = (*Runner)(nil)
