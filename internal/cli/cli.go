// Package cli implements the ofl command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/buildinfo"
	"github.com/openscad-ofl/ofltools/pkg/cache"
	"github.com/openscad-ofl/ofltools/pkg/config"
	"github.com/openscad-ofl/ofltools/pkg/imagediff"
	"github.com/openscad-ofl/ofltools/pkg/observability"
	"github.com/openscad-ofl/ofltools/pkg/openscad"
	"github.com/openscad-ofl/ofltools/pkg/process"
	"github.com/openscad-ofl/ofltools/pkg/vcs"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "ofl"

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *config.Config

	// Exec runs every external program. Tests replace it with a fake.
	Exec process.Executor

	// In feeds confirmation prompts.
	In io.Reader

	configPath string
	verbosity  int
}

// New creates a new CLI instance logging to w at the given verbosity.
func New(w io.Writer, verbosity int) *CLI {
	return &CLI{
		Logger:    newLogger(w, levelFor(verbosity)),
		Config:    config.Default(),
		Exec:      process.NewRunner(),
		In:        os.Stdin,
		verbosity: verbosity,
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Build and test helpers for the OpenSCAD Foundation Library",
		Long: `ofl wraps the OpenSCAD renderer for the OpenSCAD Foundation Library build:
it runs scripts with warnings treated as failures, executes test cases,
produces documentation pictures and compares them, and bumps releases.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().IntVarP(&c.verbosity, "verbosity", "v", c.verbosity, "verbosity: 0 silent, 1 error, 2 warn, 3 info, 4 debug")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $"+config.EnvVar+" or ./ofl.toml)")

	root.AddCommand(c.openscadCommand())
	root.AddCommand(c.testCommand())
	root.AddCommand(c.pictureCommand())
	root.AddCommand(c.imageDiffCommand())
	root.AddCommand(c.bumpCommand())
	root.AddCommand(c.newTestCommand())
	root.AddCommand(c.assertCommand())
	root.AddCommand(c.depsCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup applies the persistent flags before any command runs.
func (c *CLI) setup(cmd *cobra.Command) error {
	if err := validateVerbosity(c.verbosity); err != nil {
		return err
	}
	c.Logger.SetLevel(levelFor(c.verbosity))

	cfg, err := config.Load(c.configPath, ".")
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Source != "" {
		c.Logger.Debug("loaded config", "file", cfg.Source)
	}

	observability.SetRendererHooks(logHooks{})
	observability.SetCacheHooks(logHooks{})
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Factories
// =============================================================================

// newInvoker creates a renderer invoker using the configured dialect.
func (c *CLI) newInvoker() *openscad.Invoker {
	iv := openscad.NewInvoker(c.Exec, c.Logger)
	iv.Renderer = c.Config.RendererDialect()
	return iv
}

// newComparer creates an image comparer backed by the score cache.
func (c *CLI) newComparer(noCache bool) (*imagediff.Comparer, error) {
	sc, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return imagediff.NewComparer(sc, c.Logger), nil
}

// newGit creates a git client for the working directory.
func (c *CLI) newGit() *vcs.Git {
	return vcs.New(c.Exec, "")
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/ofl/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
