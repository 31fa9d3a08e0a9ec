// This file contains the configuration shared by the host and preset
// plugins for establishing gRPC communication via hashicorp/go-plugin.

package plugin

import (
	"github.com/hashicorp/go-plugin"
)

// ProtocolVersion is the plugin protocol version.
// Increment this when making breaking changes to the PresetProvider service.
const ProtocolVersion = 1

// MagicCookieKey is the environment variable name for the magic cookie.
const MagicCookieKey = "LINTCFG_PLUGIN_MAGIC_COOKIE"

// MagicCookieValue is the expected value of the magic cookie.
const MagicCookieValue = "lintcfg-preset-plugin-v1"

// Handshake is the HandshakeConfig used to configure go-plugin.
// The host and plugin must agree on these values to communicate.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  ProtocolVersion,
	MagicCookieKey:   MagicCookieKey,
	MagicCookieValue: MagicCookieValue,
}

// PluginName is the name used to dispense the preset provider.
const PluginName = "preset"

// PluginMap is the map of plugins the host can dispense.
var PluginMap = map[string]plugin.Plugin{
	PluginName: &PresetPlugin{},
}
