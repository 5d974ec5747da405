package cli

import (
	"io"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/config"
	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/openscad"
	"github.com/openscad-ofl/ofltools/pkg/suite"
)

// testOpts holds the command-line flags for the test command.
type testOpts struct {
	view     suite.View
	dryRun   bool
	mustFail bool   // every case is expected to fail
	tempRoot string // accepted for make compatibility; captures live next to the test
}

// testCommand creates the command running a library test.
func (c *CLI) testCommand() *cobra.Command {
	var opts testOpts

	cmd := &cobra.Command{
		Use:   "test PATH",
		Short: "Run a library test and all its test cases",
		Long: `Run the test at PATH, given without suffix (e.g. tests/foundation/hole).

Camera and projection default to ARG_CAMERA and ARG_PROJECTION from
PATH.conf. Every "TEST_CASE..." parameter set in PATH.json runs as a
separate case; without cases the script runs once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateTempRoot(opts.tempRoot); err != nil {
				return err
			}
			_, err := c.runTest(cmd, args[0], &opts)
			return err
		},
	}

	cmd.Flags().StringVarP(&opts.view.Camera, "camera", "c", "", "OpenSCAD camera position")
	cmd.Flags().StringVarP(&opts.view.Projection, "projection", "p", "", "(o)rtho or (p)erspective")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "print the renderer commands without running them")
	cmd.Flags().BoolVar(&opts.mustFail, "must-fail", false, "expect every case to fail")
	cmd.Flags().StringVarP(&opts.tempRoot, "temp-root", "t", "", "temporary directory (/tmp or /var/tmp)")

	return cmd
}

// testOutcome summarizes a test run.
type testOutcome struct {
	Cases  int
	Passed int
}

// runTest runs every job of the test at path and stops at the first case
// that does not meet the expectation.
func (c *CLI) runTest(cmd *cobra.Command, path string, opts *testOpts) (*testOutcome, error) {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	layout := suite.NewLayout(path)
	c.Logger.Debug("test layout", "dir", layout.Dir, "base", layout.Base)

	conf, err := suite.ReadConf(layout.Conf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", layout.Conf)
	}
	jobs, err := suite.Plan(layout, suite.Arguments(conf, opts.view))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", layout.JSON)
	}
	c.Logger.Debug("planned test", "cases", len(jobs), "must-fail", opts.mustFail)

	if jobs[0].Case != "" && !opts.dryRun {
		if err := os.MkdirAll(layout.EchoDir(), 0755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", layout.EchoDir())
		}
	}

	p := newProgress(c.Logger)
	iv := c.newInvoker()
	outcome := &testOutcome{Cases: len(jobs)}
	for _, job := range jobs {
		res, err := iv.Invoke(ctx, job.Request(layout.Scad, opts.dryRun))
		if err != nil {
			return outcome, err
		}
		if res.DryRun {
			printCommand(out, res.CommandLine())
			continue
		}

		ok := res.Failed() == opts.mustFail
		printMark(out, job.Name, ok)
		if !ok {
			printNewline(out)
			reportFailure(out, res, opts.mustFail)
			return outcome, exitWith(ExitFailure)
		}
		outcome.Passed++
	}
	if !opts.dryRun {
		printNewline(out)
	}
	p.done("ran " + layout.Base)
	return outcome, nil
}

// validateTempRoot accepts an empty value or one of config.TempRoots.
func validateTempRoot(dir string) error {
	if dir == "" || slices.Contains(config.TempRoots, dir) {
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput, "temp root must be one of %v, got %q", config.TempRoots, dir)
}

// reportFailure prints the failed result and the capture file.
func reportFailure(w io.Writer, res *openscad.Result, mustFail bool) {
	if mustFail {
		printError(w, "expected failure, but %s succeeded", res.CommandLine())
		return
	}
	printError(w, "%s: %s (code %d)", res.Status, res.CommandLine(), res.Code())
	if res.CapturePath == "" {
		return
	}
	data, err := os.ReadFile(res.CapturePath)
	if err != nil {
		printDetail(w, "no capture file %s", res.CapturePath)
		return
	}
	printFile(w, res.CapturePath)
	w.Write(data)
}
