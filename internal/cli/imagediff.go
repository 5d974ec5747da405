package cli

import (
	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/imagediff"
)

// imageDiffCommand creates the image comparison command.
func (c *CLI) imageDiffCommand() *cobra.Command {
	var (
		threshold int
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "image-diff FIRST SECOND",
		Short: "Compare two images by structural similarity",
		Long: `Compare two images by structural similarity (SSIM) and print the
score as a percentage. Exits 1 when the score is below the threshold.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = c.Config.Threshold()
			}
			if threshold < 0 || threshold > 100 {
				return errors.New(errors.ErrCodeInvalidInput, "threshold must be within 0-100, got %d", threshold)
			}

			cmp, err := c.newComparer(noCache)
			if err != nil {
				return err
			}
			res, err := cmp.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			ok := res.Passes(threshold)
			printScore(cmd.OutOrStdout(), res.Score, ok)
			if !ok {
				c.Logger.Error("insufficient similarity", "score", res.Score, "threshold", threshold)
				return exitWith(ExitFailure)
			}
			c.Logger.Info("images look alike", "first", res.First, "second", res.Second, "score", res.Score, "cached", res.Cached)
			return nil
		},
	}

	cmd.Flags().IntVarP(&threshold, "threshold", "t", imagediff.DefaultThreshold, "minimum similarity percentage")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not read or store cached scores")

	return cmd
}
