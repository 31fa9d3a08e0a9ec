// Package plugin lets presets be served by separate executables.
//
// A preset plugin is a binary named lintcfg-preset-<name> placed in a rule
// directory. It calls Serve from main; the host side is Host, which
// launches the binaries over hashicorp/go-plugin and looks presets up
// through the PresetProvider gRPC service.
package plugin

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
)

// ServeOpts contains options for serving a preset plugin.
type ServeOpts struct {
	// Name identifies the plugin in the direct invocation message.
	Name string
	// Presets is the plugin's preset source.
	Presets Source
}

// Serve starts the plugin server. It should be called from the plugin's
// main function and blocks until the host disconnects.
//
// When invoked directly (outside of lintcfg) it prints the presets it
// serves and returns.
//
// Example:
//
//	func main() {
//	    plugin.Serve(&plugin.ServeOpts{
//	        Name: "company",
//	        Presets: ruleset.Static{
//	            "company:strict": {Rules: ruleset.Rules{"curly": ruleset.Enable()}},
//	        },
//	    })
//	}
func Serve(opts *ServeOpts) {
	if opts == nil || opts.Presets == nil {
		return
	}

	if os.Getenv(MagicCookieKey) != MagicCookieValue {
		printDirectInvocationMessage(os.Stderr, opts)
		return
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "plugin",
		Level:  hclog.Warn,
		Output: os.Stderr,
	})

	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: Handshake,
		Plugins: map[string]plugin.Plugin{
			PluginName: &PresetPlugin{Impl: opts.Presets},
		},
		GRPCServer: plugin.DefaultGRPCServer,
		Logger:     logger,
	})
}

func printDirectInvocationMessage(w io.Writer, opts *ServeOpts) {
	fmt.Fprintf(w, "This is a lintcfg preset plugin.\n\n")
	if opts.Name != "" {
		fmt.Fprintf(w, "Plugin: %s\n", opts.Name)
	}
	fmt.Fprintf(w, "Presets:\n")
	for _, name := range opts.Presets.Names() {
		fmt.Fprintf(w, "  - %s\n", name)
	}
	fmt.Fprintf(w, "\nPlace this binary in a rule directory as lintcfg-preset-<name> to use it.\n")
}
