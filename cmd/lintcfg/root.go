package main

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// logEnv is consulted when --log-level is not given.
const logEnv = "LINTCFG_LOG"

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "lintcfg",
	Short: "Resolve linter rule configurations",
	Long: `lintcfg merges a linter configuration with the presets it extends and
prints the effective rule settings.

A configuration is an HCL, JSON, or YAML document with the keys
ruleDirectories, extends, defaultSeverity, sourceRules, and
targetLanguageRules. Presets are resolved from the builtin set, from other
documents on disk, and from preset plugins found in rule directories.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error (default from "+logEnv+", else warn)")
}

// newLogger builds the command logger on stderr.
func newLogger() (hclog.Logger, error) {
	name := logLevel
	if name == "" {
		name = os.Getenv(logEnv)
	}
	level := hclog.Warn
	if name != "" {
		level = hclog.LevelFromString(name)
		if level == hclog.NoLevel {
			return nil, fmt.Errorf("invalid log level %q", name)
		}
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "lintcfg",
		Level:  level,
		Output: os.Stderr,
	}), nil
}
