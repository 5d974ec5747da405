package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/semver"
	"github.com/openscad-ofl/ofltools/pkg/vcs"
)

// bumpOpts holds the command-line flags for the bump command.
type bumpOpts struct {
	major, minor, patch bool
	dryRun              bool
	yes                 bool // skip the confirmation prompt
}

func (o *bumpOpts) mode() semver.Mode {
	switch {
	case o.major:
		return semver.Major
	case o.minor:
		return semver.Minor
	default:
		return semver.Patch
	}
}

// bumpPlan is what bump is about to do.
type bumpPlan struct {
	Mode    semver.Mode
	Current semver.Version
	Next    semver.Version
	Branch  string
}

func (p *bumpPlan) commands() [][]string {
	return [][]string{
		vcs.TagCommand(p.Next.String(), p.Next.Tag(), p.Branch),
		vcs.PushCommand(),
	}
}

// bumpCommand creates the release command.
func (c *CLI) bumpCommand() *cobra.Command {
	var opts bumpOpts

	cmd := &cobra.Command{
		Use:   "bump",
		Short: "Tag the next release and push it",
		Long: `Derive the next version from the latest release tag, annotate the
current branch with it and push commits and tags to the remote.

The working tree must be clean.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBump(cmd, &opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.major, "major", "M", false, "increment the major release number")
	cmd.Flags().BoolVarP(&opts.minor, "minor", "m", false, "increment the minor release number")
	cmd.Flags().BoolVarP(&opts.patch, "patch", "p", true, "increment the patch release number (default)")
	cmd.Flags().BoolVarP(&opts.dryRun, "dry-run", "d", false, "print the git commands without running them")
	cmd.Flags().BoolVar(&opts.yes, "yes", false, "do not ask for confirmation")
	cmd.MarkFlagsMutuallyExclusive("major", "minor")

	return cmd
}

func (c *CLI) runBump(cmd *cobra.Command, opts *bumpOpts) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	git := c.newGit()

	plan, err := planBump(ctx, git, opts.mode())
	if err != nil {
		return err
	}
	c.Logger.Info("bump", "mode", plan.Mode, "current", plan.Current, "next", plan.Next, "branch", plan.Branch)

	printBumpPlan(out, plan)
	if !opts.yes {
		ok, err := confirm(ctx, c.In, out, "press «RETURN» to continue or «CTRL-C» to exit", true)
		if err != nil {
			return err
		}
		if !ok {
			printWarning(out, "Release interrupted")
			return exitWith(ExitFailure)
		}
	}

	for _, argv := range plan.commands() {
		if opts.dryRun {
			printCommand(out, strings.Join(argv, " "))
			continue
		}
		if err := git.Run(ctx, argv); err != nil {
			return err
		}
	}
	if !opts.dryRun {
		printSuccess(out, "Released %s", plan.Next.Tag())
	}
	return nil
}

func planBump(ctx context.Context, git *vcs.Git, mode semver.Mode) (*bumpPlan, error) {
	tag, err := git.LatestTag(ctx)
	if err != nil {
		return nil, err
	}
	current, err := semver.Parse(tag)
	if err != nil {
		return nil, err
	}
	next, err := current.Bump(mode)
	if err != nil {
		return nil, err
	}
	branch, err := git.Branch(ctx)
	if err != nil {
		return nil, err
	}
	if err := git.CheckClean(ctx); err != nil {
		return nil, err
	}
	return &bumpPlan{Mode: mode, Current: current, Next: next, Branch: branch}, nil
}

func printBumpPlan(w io.Writer, p *bumpPlan) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Rows(
			[]string{"Mode", string(p.Mode)},
			[]string{"Current version", p.Current.String()},
			[]string{"New version", p.Next.String()},
			[]string{"Branch", p.Branch},
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if col == 0 {
				return keyStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})

	fmt.Fprintln(w, t.Render())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "this command is going to:")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  * annotate the local repository as %s\n", p.Next.Tag())
	fmt.Fprintf(w, "  * push updates and the %s annotation to the remote\n", p.Next.Tag())
	fmt.Fprintln(w)
}
