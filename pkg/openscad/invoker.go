package openscad

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	oflerrors "github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/observability"
	"github.com/openscad-ofl/ofltools/pkg/process"
)

// Invoker runs the renderer. It holds no per-run state; each call to
// Invoke spawns at most one process and blocks until it terminates.
type Invoker struct {
	Renderer Renderer
	Exec     process.Executor
	Logger   *log.Logger
}

// NewInvoker creates an invoker for the default renderer dialect.
// If logger is nil, log.Default() is used.
func NewInvoker(exec process.Executor, logger *log.Logger) *Invoker {
	if logger == nil {
		logger = log.Default()
	}
	return &Invoker{
		Renderer: DefaultRenderer(),
		Exec:     exec,
		Logger:   logger,
	}
}

// Invoke builds the command for req, runs it unless req.DryRun is set and
// classifies the outcome.
func (iv *Invoker) Invoke(ctx context.Context, req Request) (*Result, error) {
	if req.Script == "" {
		return nil, oflerrors.New(oflerrors.ErrCodeInvalidInput, "renderer script path cannot be empty")
	}

	argv := iv.Renderer.Command(req)
	res := &Result{
		RunID:   uuid.NewString(),
		Command: argv,
		DryRun:  req.DryRun,
	}
	if req.Capture {
		res.CapturePath = req.capturePath()
	}

	if req.DryRun {
		iv.Logger.Debug("dry run", "run", res.RunID, "command", argv)
		return res, nil
	}

	iv.Logger.Debug("invoking renderer", "run", res.RunID, "command", argv)
	hooks := observability.Renderer()
	hooks.OnInvokeStart(ctx, argv)
	start := time.Now()

	err := iv.run(ctx, req, res)
	code := 0
	if err == nil {
		code = res.Code()
	}
	hooks.OnInvokeComplete(ctx, argv, code, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	iv.Logger.Debug("renderer finished",
		"run", res.RunID,
		"exit", res.ExitCode,
		"status", res.Status,
		"duration", time.Since(start).Round(time.Millisecond))
	return res, nil
}

func (iv *Invoker) run(ctx context.Context, req Request, res *Result) error {
	pr, err := iv.Exec.Run(ctx, res.Command, process.Options{Quiet: req.Quiet})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return oflerrors.Wrap(oflerrors.ErrCodeRendererUnavailable, err, "start %s", res.Command[0])
	}
	res.ExitCode = pr.ExitCode

	// The capture file may be missing or partial after a failed run.
	if pr.ExitCode != 0 {
		res.Status = StatusExitFailure
		return nil
	}
	if !req.Capture {
		res.Status = StatusSuccess
		return nil
	}

	lines, err := readCapture(res.CapturePath)
	if err != nil {
		return err
	}
	res.Lines = lines
	res.Status = Classify(pr.ExitCode, lines)
	if res.Status == StatusWarningFailure {
		iv.Logger.Warn("renderer exited 0 but reported warnings", "run", res.RunID, "warnings", res.Warnings())
	}
	return nil
}

func readCapture(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, oflerrors.Wrap(oflerrors.ErrCodeCaptureMissing, err, "renderer exited 0 but capture file is unreadable")
	}
	defer f.Close()

	lines, err := ReadLines(f)
	if err != nil {
		return nil, oflerrors.Wrap(oflerrors.ErrCodeCaptureMissing, err, "read capture file %s", path)
	}
	return lines, nil
}
