package cli

import (
	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/openscad"
)

// openscadOpts holds the command-line flags for the openscad command.
type openscadOpts struct {
	script       string // renderer input
	hardWarnings bool   // capture output and fail on warnings
	dryRun       bool   // print the command only
	debug        bool   // show renderer output
}

// openscadCommand creates the renderer wrapper command.
func (c *CLI) openscadCommand() *cobra.Command {
	var opts openscadOpts

	cmd := &cobra.Command{
		Use:   "openscad --ofl-script FILE [flags] [-- renderer-args...]",
		Short: "Run the renderer on a script, failing on warnings",
		Long: `Run OpenSCAD on a script with hard warnings enabled.

With --hardwarnings the renderer log is captured next to the script
(<script>.echo) and any WARNING line other than the viewall/autocenter
notice fails the run. Arguments after -- are passed to the renderer.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.script == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--ofl-script is required")
			}
			return c.runOpenscad(cmd, &opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.script, "ofl-script", "", "OpenSCAD script")
	cmd.Flags().BoolVar(&opts.hardWarnings, "hardwarnings", false, "capture the renderer log and fail on warnings")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the renderer command without running it")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "show the renderer output")

	return cmd
}

func (c *CLI) runOpenscad(cmd *cobra.Command, opts *openscadOpts, params []string) error {
	c.Logger.Info("renderer", "script", opts.script, "params", params, "dry-run", opts.dryRun, "hardwarnings", opts.hardWarnings, "quiet", !opts.debug)

	res, err := c.newInvoker().Invoke(cmd.Context(), openscad.Request{
		Script:  opts.script,
		Params:  params,
		Capture: opts.hardWarnings,
		DryRun:  opts.dryRun,
		Quiet:   !opts.debug,
	})
	if err != nil {
		return err
	}

	if res.DryRun {
		printCommand(cmd.OutOrStdout(), res.CommandLine())
		return nil
	}
	for _, w := range res.Warnings() {
		c.Logger.Error(w)
	}
	if res.Failed() {
		c.Logger.Error("renderer failed", "status", res.Status, "code", res.Code())
	}
	return exitWith(resultExitCode(res))
}
