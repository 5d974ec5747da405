package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openscad-ofl/ofltools/pkg/errors"
	"github.com/openscad-ofl/ofltools/pkg/scaffold"
)

// newTestCommand creates the command scaffolding a test configuration.
func (c *CLI) newTestCommand() *cobra.Command {
	var (
		template string
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "new-test NAME",
		Short: "Create a test configuration from a skeleton",
		Long: fmt.Sprintf(`Create <tests>/NAME-test.conf from <tests>/skeleton-<template>.conf.

NAME is relative to the tests directory and may contain subdirectories.
Templates: %s.`, strings.Join(errors.Templates, ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			plan, err := scaffold.NewPlan(c.Config.Paths.Tests, args[0], template)
			if err != nil {
				return err
			}
			c.Logger.Info("new test", "name", plan.Name, "template", plan.Template, "source", plan.Source, "target", plan.Target)

			if plan.TargetExists() && !yes {
				ok, err := confirm(cmd.Context(), c.In, out, fmt.Sprintf("OVERWRITE '%s'?", plan.Target), false)
				if err != nil {
					return err
				}
				if !ok {
					printWarning(out, "Test creation interrupted")
					return exitWith(ExitFailure)
				}
			}

			if err := plan.Apply(); err != nil {
				return err
			}
			printSuccess(out, "Created test configuration")
			printFile(out, plan.Target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&template, "template", "t", scaffold.DefaultTemplate, "test template: "+strings.Join(errors.Templates, ", "))
	cmd.Flags().BoolVar(&yes, "yes", false, "overwrite an existing configuration without asking")

	return cmd
}
