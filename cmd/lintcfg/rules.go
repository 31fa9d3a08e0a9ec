package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/lintcfg/ruledir"
)

var rulesFlags struct {
	profile string
}

var rulesCmd = &cobra.Command{
	Use:   "rules [file]",
	Short: "List custom rules and preset plugins in rule directories",
	Long: `List what the linter would load from a document's rule directories.

Rule files are named fooBarRule.js or fooBarRule.ts and provide the rule
foo-bar. Executables named lintcfg-preset-* are preset plugins. Missing
directories are reported and skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)

	rulesCmd.Flags().StringVar(&rulesFlags.profile, "profile", "", "bundled configuration to inspect: project, ui-project")
}

func runRules(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	src, err := loadSource(args, rulesFlags.profile)
	if err != nil {
		return err
	}

	dirs := src.ruleDirs()
	found, err := ruledir.Discover(dirs, logger.Named("ruledir"))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	scanned := make(map[string]bool, len(found))
	for _, d := range found {
		scanned[d.Path] = true
		fmt.Fprintf(out, "%s\n", d.Path)
		for _, rule := range d.Rules {
			fmt.Fprintf(out, "  rule    %s\n", rule)
		}
		for _, p := range d.Plugins {
			fmt.Fprintf(out, "  plugin  %s\n", p)
		}
	}
	for _, dir := range dirs {
		if !scanned[dir] {
			fmt.Fprintf(out, "%s (missing)\n", dir)
		}
	}
	return nil
}
