package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/process"
)

// assertCommand creates the command checking another command's outcome.
func (c *CLI) assertCommand() *cobra.Command {
	var (
		dryRun bool
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:       "assert fail|success [flags] -- COMMAND [ARGS...]",
		Short:     "Run a command and check that it fails or succeeds",
		ValidArgs: []string{"fail", "success"},
		Args:      cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			expect, argv := args[0], args[1:]
			if expect != "fail" && expect != "success" {
				return errors.New(errors.ErrCodeInvalidInput, "expectation must be fail or success, got %q", expect)
			}
			c.Logger.Info("assert", "expect", expect, "command", strings.Join(argv, " "), "dry-run", dryRun, "quiet", quiet)
			if dryRun {
				return nil
			}

			res, err := c.Exec.Run(cmd.Context(), argv, process.Options{Quiet: quiet})
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "run %s", argv[0])
			}
			c.Logger.Debug("assert finished", "exit", res.ExitCode)

			failed := res.ExitCode != 0
			if failed == (expect == "fail") {
				return nil
			}
			return exitWith(ExitFailure)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "do not run the command")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "discard the command output")

	return cmd
}
