package plugin

import (
	"context"
	"fmt"
	"maps"
	"os/exec"
	"path/filepath"
	"slices"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"

	"github.com/jokarl/lintcfg/ruleset"
)

// Host launches preset plugin binaries and serves their presets as a
// ruleset.Provider. Plugins start on the first lookup. Close must be
// called to stop them.
type Host struct {
	paths  []string
	logger hclog.Logger

	mu      sync.Mutex
	started bool
	clients []*plugin.Client
	owners  map[string]*GRPCPresetClient
}

var _ ruleset.Provider = (*Host)(nil)

// NewHost returns a host for the plugin binaries at paths. A nil logger
// discards output.
func NewHost(paths []string, logger hclog.Logger) *Host {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Host{paths: paths, logger: logger}
}

// Preset implements ruleset.Provider. When two plugins serve the same
// reference, the one listed first wins.
func (h *Host) Preset(ctx context.Context, ref string) (*ruleset.Preset, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.start(ctx); err != nil {
		return nil, err
	}
	owner, ok := h.owners[ref]
	if !ok {
		return nil, &ruleset.UnknownPresetError{Ref: ref}
	}
	return owner.Preset(ctx, ref)
}

// Names returns every reference served by the host's plugins, sorted.
func (h *Host) Names(ctx context.Context) ([]string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.start(ctx); err != nil {
		return nil, err
	}
	return slices.Sorted(maps.Keys(h.owners)), nil
}

// Close kills every plugin process the host started.
func (h *Host) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		client.Kill()
	}
	h.clients = nil
	h.owners = nil
	h.started = false
}

func (h *Host) start(ctx context.Context) error {
	if h.started {
		return nil
	}
	h.owners = map[string]*GRPCPresetClient{}
	for _, path := range h.paths {
		if err := h.launch(ctx, path); err != nil {
			for _, client := range h.clients {
				client.Kill()
			}
			h.clients = nil
			return err
		}
	}
	h.started = true
	return nil
}

func (h *Host) launch(ctx context.Context, path string) error {
	logger := h.logger.Named(filepath.Base(path))
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  Handshake,
		Plugins:          PluginMap,
		Cmd:              exec.Command(path),
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Logger:           logger,
	})

	rpcClient, err := client.Client()
	if err != nil {
		client.Kill()
		return fmt.Errorf("starting preset plugin %s: %w", path, err)
	}
	raw, err := rpcClient.Dispense(PluginName)
	if err != nil {
		client.Kill()
		return fmt.Errorf("dispensing preset plugin %s: %w", path, err)
	}
	presets, ok := raw.(*GRPCPresetClient)
	if !ok {
		client.Kill()
		return fmt.Errorf("preset plugin %s: unexpected client type %T", path, raw)
	}
	h.clients = append(h.clients, client)

	names, err := presets.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("listing presets of %s: %w", path, err)
	}
	for _, name := range names {
		if _, taken := h.owners[name]; taken {
			logger.Warn("preset already served by another plugin", "preset", name)
			continue
		}
		h.owners[name] = presets
	}
	logger.Debug("preset plugin started", "presets", len(names))
	return nil
}
