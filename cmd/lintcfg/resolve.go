package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jokarl/lintcfg/config"
	"github.com/jokarl/lintcfg/ruleset"
)

var resolveFlags struct {
	profile string
	format  string
	output  string
	watch   bool
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [file]",
	Short: "Print the effective configuration",
	Long: `Merge a configuration with every preset it extends and print the result.

The output is itself a valid document with no extends, so it can be handed to
the linter directly.

Examples:
  # Resolve a document
  lintcfg resolve tslint.hcl

  # Resolve a bundled project configuration
  lintcfg resolve --profile project --format yaml

  # Write the result and keep it up to date
  lintcfg resolve tslint.hcl --output effective.json --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().StringVar(&resolveFlags.profile, "profile", "", "bundled configuration to resolve: project, ui-project")
	resolveCmd.Flags().StringVar(&resolveFlags.format, "format", "", "output format: hcl, json, yaml (default from --output, else hcl)")
	resolveCmd.Flags().StringVarP(&resolveFlags.output, "output", "o", "", "write to this file instead of stdout")
	resolveCmd.Flags().BoolVar(&resolveFlags.watch, "watch", false, "re-resolve whenever the file changes")
}

func runResolve(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	format, err := outputFormat(resolveFlags.format, resolveFlags.output)
	if err != nil {
		return err
	}

	once := func() error {
		src, err := loadSource(args, resolveFlags.profile)
		if err != nil {
			return err
		}
		out, err := resolveSource(cmd.Context(), src, format, logger)
		if err != nil {
			return err
		}
		return writeOutput(cmd, resolveFlags.output, out)
	}

	if !resolveFlags.watch {
		return once()
	}
	if len(args) == 0 {
		return fmt.Errorf("--watch needs a file")
	}
	if err := once(); err != nil {
		logger.Error("resolve failed", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchFile(ctx, args[0], defaultDebounce, logger, once)
}

// resolveSource resolves src and encodes the effective document.
func resolveSource(ctx context.Context, src *source, format config.Format, logger hclog.Logger) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	provider, closeProvider, err := src.provider(logger)
	if err != nil {
		return nil, err
	}
	defer closeProvider()

	r := src.doc.Registry(src.name, provider, ruleset.WithLogger(logger.Named("registry")))
	eff, err := r.Resolve(ctx)
	if err != nil {
		return nil, err
	}
	logger.Info("resolved", "config", src.name, "rules", len(eff.Rules), "target_rules", len(eff.TargetRules))
	return config.Encode(config.FromEffective(eff), format)
}

// outputFormat picks the format from the flag, then the output path.
func outputFormat(flag, output string) (config.Format, error) {
	if flag != "" {
		return config.ParseFormat(flag)
	}
	if output != "" {
		return config.FormatFromPath(output)
	}
	return config.FormatHCL, nil
}

// writeOutput writes out to path atomically, or to the command's stdout.
func writeOutput(cmd *cobra.Command, path string, out []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return err
	}
	return config.WriteFile(path, out)
}
