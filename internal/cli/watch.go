package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/openscad"
	"github.com/openscad-ofl/ofltools/pkg/suite"
	"github.com/openscad-ofl/ofltools/pkg/watcher"
)

// watchCommand creates the command re-running a test on change.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts     testOpts
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch PATH",
		Short: "Re-run a test whenever its files or dependencies change",
		Long: `Run the test at PATH (without suffix), then run it again whenever the
script, its .conf or .json file, or any script it uses or includes is
written. Stop with Ctrl-C.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd, args[0], &opts, debounce)
		},
	}

	cmd.Flags().StringVarP(&opts.view.Camera, "camera", "c", "", "OpenSCAD camera position")
	cmd.Flags().StringVarP(&opts.view.Projection, "projection", "p", "", "(o)rtho or (p)erspective")
	cmd.Flags().BoolVar(&opts.mustFail, "must-fail", false, "expect every case to fail")
	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, "quiet period before re-running")

	return cmd
}

func (c *CLI) runWatch(cmd *cobra.Command, path string, opts *testOpts, debounce time.Duration) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	layout := suite.NewLayout(path)

	w, err := watcher.New(debounce, c.Logger)
	if err != nil {
		return err
	}
	defer w.Close()

	run := func() error {
		if _, err := c.runTest(cmd, path, opts); err != nil {
			var ee *ExitError
			if !errors.As(err, &ee) {
				return err
			}
		}
		return w.Set(c.watchedFiles(layout))
	}

	if err := run(); err != nil {
		return err
	}
	printInfo(out, "watching %d files, press Ctrl-C to stop", w.Files())

	return w.Run(ctx, func(changed string) {
		if ctx.Err() != nil {
			return
		}
		printInfo(out, "%s changed", changed)
		if err := run(); err != nil && !errors.Is(err, context.Canceled) {
			c.Logger.Error("watch", "err", err)
		}
	})
}

// watchedFiles lists the test's own files and every script the test
// script depends on.
func (c *CLI) watchedFiles(l suite.Layout) []string {
	files := []string{l.Scad, l.Conf, l.JSON}
	g, err := openscad.ResolveDeps(l.Scad, openscad.LibraryDirs())
	if err != nil {
		c.Logger.Warn("cannot resolve dependencies", "script", l.Scad, "err", err)
		return files
	}
	return append(files, g.Files[1:]...)
}
