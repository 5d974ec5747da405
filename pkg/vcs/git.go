// Package vcs queries and tags the library's git repository.
package vcs

import (
	"context"
	"strings"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/process"
)

// Program is the git executable.
const Program = "git"

// Git runs git commands in a working tree.
type Git struct {
	Exec process.Executor
	Dir  string // working tree, empty for the current directory
}

// New returns a Git client for the working tree at dir.
func New(exec process.Executor, dir string) *Git {
	if exec == nil {
		exec = process.NewRunner()
	}
	return &Git{Exec: exec, Dir: dir}
}

// LatestTag returns the most recent annotated tag reachable from HEAD with
// its leading character ("v") removed.
func (g *Git) LatestTag(ctx context.Context) (string, error) {
	out, err := g.output(ctx, Program, "describe", "--abbrev=0")
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", errors.New(errors.ErrCodeVCS, "no release tag found")
	}
	return out[1:], nil
}

// Branch returns the current branch name.
func (g *Git) Branch(ctx context.Context) (string, error) {
	return g.output(ctx, Program, "rev-parse", "--abbrev-ref", "HEAD")
}

// CheckClean fails with DIRTY_WORKTREE when the working tree has
// uncommitted or untracked changes.
func (g *Git) CheckClean(ctx context.Context) error {
	out, err := g.output(ctx, Program, "status", "--porcelain")
	if err != nil {
		return err
	}
	if out != "" {
		return errors.New(errors.ErrCodeDirtyWorktree, "unclear git status:\n\n%s", out)
	}
	return nil
}

// TagCommand returns the command annotating branch with tag.
func TagCommand(version, tag, branch string) []string {
	return []string{Program, "tag", "-m", "Version " + version + " bumped", tag, branch}
}

// PushCommand returns the command pushing commits and their tags.
func PushCommand() []string {
	return []string{Program, "push", "--follow-tags"}
}

// Run executes argv with inherited streams. A non-zero exit is a
// VCS_FAILURE.
func (g *Git) Run(ctx context.Context, argv []string) error {
	res, err := g.Exec.Run(ctx, argv, process.Options{Dir: g.Dir})
	if err != nil {
		return errors.Wrap(errors.ErrCodeVCS, err, "%s", strings.Join(argv, " "))
	}
	if res.ExitCode != 0 {
		return errors.New(errors.ErrCodeVCS, "%s exited with code %d", strings.Join(argv, " "), res.ExitCode)
	}
	return nil
}

func (g *Git) output(ctx context.Context, argv ...string) (string, error) {
	res, err := g.Exec.Run(ctx, argv, process.Options{Capture: true, Dir: g.Dir})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeVCS, err, "%s", strings.Join(argv, " "))
	}
	out := strings.TrimSpace(string(res.Output))
	if res.ExitCode != 0 {
		return "", errors.New(errors.ErrCodeVCS, "%s: %s", strings.Join(argv, " "), out)
	}
	return out, nil
}
