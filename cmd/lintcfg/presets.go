package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jokarl/lintcfg/configs"
	"github.com/jokarl/lintcfg/preset"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List builtin presets and bundled configurations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		names, err := preset.Builtin{}.Names()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Builtin presets:")
		for _, name := range names {
			fmt.Fprintf(out, "  %s\n", name)
		}
		fmt.Fprintln(out, "Bundled configurations (--profile):")
		for _, name := range configs.Names() {
			fmt.Fprintf(out, "  %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
