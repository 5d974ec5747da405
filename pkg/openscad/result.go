package openscad

import "strings"

// WarningExitCode is the code reported for a run that exited 0 but printed
// a disqualifying warning. No real process exit status is negative, so it
// never collides with a code returned by the renderer itself.
const WarningExitCode = -1

// Status is the classified outcome of an invocation.
type Status int

const (
	StatusSuccess        Status = iota // exit 0, no disqualifying warning
	StatusExitFailure                  // non-zero exit code
	StatusWarningFailure               // exit 0 with a disqualifying warning
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusExitFailure:
		return "exit-failure"
	case StatusWarningFailure:
		return "warning-failure"
	}
	return "unknown"
}

// Result is the outcome of one renderer invocation.
type Result struct {
	RunID       string   // unique identifier for this run
	Command     []string // full argv, also set for dry runs
	CapturePath string   // capture file, empty when capture was off
	ExitCode    int      // raw process exit code
	Lines       []string // capture file contents when it was scanned
	Status      Status
	DryRun      bool
}

// Failed reports whether the run must be treated as a failure.
func (r *Result) Failed() bool {
	return r.Status != StatusSuccess
}

// Code returns 0 on success, the renderer's exit code on exit failure and
// [WarningExitCode] on warning failure.
func (r *Result) Code() int {
	switch r.Status {
	case StatusSuccess:
		return 0
	case StatusWarningFailure:
		return WarningExitCode
	}
	return r.ExitCode
}

// Warnings returns the captured lines that caused a warning failure.
func (r *Result) Warnings() []string {
	var out []string
	for _, line := range r.Lines {
		if IsDisqualifying(line) {
			out = append(out, line)
		}
	}
	return out
}

// CommandLine renders Command as a single shell-like line for display.
func (r *Result) CommandLine() string {
	parts := make([]string, len(r.Command))
	for i, arg := range r.Command {
		if arg == "" || strings.ContainsAny(arg, " \t\"'$*") {
			parts[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
			continue
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}
