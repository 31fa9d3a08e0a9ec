package main

import (
	"github.com/spf13/cobra"

	"github.com/jokarl/lintcfg/config"
)

var fmtFlags struct {
	format string
	output string
}

var fmtCmd = &cobra.Command{
	Use:   "fmt <file>",
	Short: "Rewrite a document in canonical form",
	Long: `Decode a document and encode it again with rules sorted by name.

Without --format or --output the document is printed in its own format.

Examples:
  # Print the canonical form
  lintcfg fmt tslint.hcl

  # Convert JSON to YAML
  lintcfg fmt tslint.json --output tslint.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().StringVar(&fmtFlags.format, "format", "", "output format: hcl, json, yaml (default from --output, else the input's)")
	fmtCmd.Flags().StringVarP(&fmtFlags.output, "output", "o", "", "write to this file instead of stdout")
}

func runFmt(cmd *cobra.Command, args []string) error {
	doc, err := config.Load(args[0])
	if err != nil {
		return err
	}

	target := fmtFlags.output
	if target == "" {
		target = args[0]
	}
	format, err := outputFormat(fmtFlags.format, target)
	if err != nil {
		return err
	}

	out, err := config.Encode(doc, format)
	if err != nil {
		return err
	}
	return writeOutput(cmd, fmtFlags.output, out)
}
