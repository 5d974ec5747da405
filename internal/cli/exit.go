package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/openscad-ofl/ofltools/pkg/openscad"
)

// Process exit statuses.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInterrupted = 130 // shell convention for SIGINT
)

// ExitError carries a process exit status out of a command. Err, when set,
// is reported before exiting; a nil Err means the command already printed
// everything the user needs.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

func (e *ExitError) Unwrap() error { return e.Err }

// exitWith returns an ExitError for code, or nil for ExitOK.
func exitWith(code int) error {
	if code == ExitOK {
		return nil
	}
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by a command to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ExitFailure
}

// Message returns the text to report for err, or "" when the command has
// already reported it.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var ee *ExitError
	if errors.As(err, &ee) && ee.Err == nil {
		return ""
	}
	if errors.Is(err, context.Canceled) {
		return "interrupted"
	}
	return err.Error()
}

// resultExitCode maps a renderer result to a process exit status: 0 on
// success, the renderer's own code on exit failure and 1 on warning
// failure.
func resultExitCode(res *openscad.Result) int {
	code := res.Code()
	if code == openscad.WarningExitCode {
		return ExitFailure
	}
	return code
}
