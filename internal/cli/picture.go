package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/suite"
)

// pictureOpts holds the command-line flags for the picture command.
type pictureOpts struct {
	script     string
	resolution string
	view       suite.View
	dryRun     bool
	tempRoot   string
}

// pictureCommand creates the command producing a documentation picture.
func (c *CLI) pictureCommand() *cobra.Command {
	var opts pictureOpts

	cmd := &cobra.Command{
		Use:   "picture --ofl-script FILE -r WxH PICTURE",
		Short: "Render a documentation picture from a library script",
		Long: `Render PICTURE (a .png path) from a library script.

The parameter set named after the picture's base name is taken from the
script's .json file. The image is rendered at the configured hires scale
of the requested resolution; the renderer log goes to the temp root.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.script == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--ofl-script is required")
			}
			if opts.resolution == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--resolution is required")
			}
			if err := validateTempRoot(opts.tempRoot); err != nil {
				return err
			}
			return c.runPicture(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.script, "ofl-script", "", "OpenSCAD script")
	cmd.Flags().StringVarP(&opts.resolution, "resolution", "r", "", "target resolution, e.g. 800x600")
	cmd.Flags().StringVarP(&opts.view.Camera, "camera", "c", "", "OpenSCAD camera position")
	cmd.Flags().StringVarP(&opts.view.Projection, "projection", "p", "", "(o)rtho or (p)erspective")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "print the renderer command without running it")
	cmd.Flags().StringVarP(&opts.tempRoot, "temp-root", "t", "", "temporary directory (/tmp or /var/tmp)")

	return cmd
}

func (c *CLI) runPicture(cmd *cobra.Command, picture string, opts *pictureOpts) error {
	out := cmd.OutOrStdout()
	tempRoot := opts.tempRoot
	if tempRoot == "" {
		tempRoot = c.Config.Paths.TempRoot
	}

	job, script, err := suite.PictureJob(suite.PictureSpec{
		Script:     opts.script,
		Picture:    picture,
		Resolution: opts.resolution,
		Scale:      c.Config.Picture.HiresScale,
		View:       opts.view,
		TempRoot:   tempRoot,
	})
	if err != nil {
		return err
	}
	c.Logger.Debug("picture", "script", script, "params", job.Params, "capture", job.CapturePath)

	spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "rendering "+picture)
	if !opts.dryRun {
		spin.Start()
	}
	res, err := c.newInvoker().Invoke(cmd.Context(), job.Request(script, opts.dryRun))
	if !opts.dryRun {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if res.DryRun {
		printCommand(out, res.CommandLine())
		return nil
	}
	if !res.Failed() {
		printMark(out, "", true)
		return nil
	}
	code := resultExitCode(res)
	printMark(out, fmt.Sprintf("%s (%d)", markFail, res.Code()), false)
	printNewline(out)
	reportFailure(out, res, false)
	return exitWith(code)
}
