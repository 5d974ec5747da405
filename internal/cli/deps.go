package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/openscad"
)

// depsCommand creates the command graphing a script's dependencies.
func (c *CLI) depsCommand() *cobra.Command {
	var (
		output string
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "deps SCRIPT",
		Short: "Show the use/include dependency graph of a script",
		Long: `Resolve every use <> and include <> reachable from SCRIPT, looking in the
referencing file's directory and then in $OPENSCADPATH.

Without --output the graph is printed in DOT format. An output ending in
.svg is rendered with Graphviz; any other name receives the DOT source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			script := openscad.ScriptPath(args[0])
			if _, err := os.Stat(script); err != nil {
				return errors.Wrap(errors.ErrCodeFileNotFound, err, "script %s", script)
			}

			g, err := openscad.ResolveDeps(script, openscad.LibraryDirs())
			if err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "resolve dependencies of %s", script)
			}
			c.Logger.Info("resolved dependencies", "files", len(g.Files), "edges", len(g.Edges))
			for _, m := range g.Missing() {
				c.Logger.Warn("unresolved dependency", "path", m)
			}

			if list {
				for _, f := range g.Files {
					fmt.Fprintln(out, f)
				}
				return nil
			}

			dot := g.DOT()
			if output == "" {
				fmt.Fprint(out, dot)
				return nil
			}

			data := []byte(dot)
			if strings.EqualFold(filepath.Ext(output), ".svg") {
				spin := newSpinner(cmd.Context(), cmd.ErrOrStderr(), "rendering graph")
				spin.Start()
				data, err = openscad.RenderSVG(cmd.Context(), dot)
				spin.Stop()
				if err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "render %s", output)
				}
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			printSuccess(out, "Dependency graph written")
			printFile(out, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .dot)")
	cmd.Flags().BoolVar(&list, "list", false, "list the resolved files instead of graphing them")

	return cmd
}
