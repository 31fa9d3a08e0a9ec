package plugin

import (
	"context"
	"errors"

	"github.com/hashicorp/go-plugin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jokarl/lintcfg/ruleset"
)

// Source is what a preset plugin serves. ruleset.Static satisfies it.
type Source interface {
	ruleset.Provider
	Names() []string
}

// Ensure PresetPlugin implements plugin.GRPCPlugin.
var _ plugin.GRPCPlugin = (*PresetPlugin)(nil)

// PresetPlugin is the implementation of plugin.GRPCPlugin for the
// PresetProvider service. The host uses it to create a client and the
// plugin uses it to create a server.
type PresetPlugin struct {
	plugin.Plugin
	// Impl is only used when serving (plugin side).
	Impl Source
}

// GRPCServer registers the PresetProvider service. Called on the plugin side.
func (p *PresetPlugin) GRPCServer(_ *plugin.GRPCBroker, s *grpc.Server) error {
	RegisterPresetServer(s, &GRPCPresetServer{impl: p.Impl})
	return nil
}

// GRPCClient returns a *GRPCPresetClient. Called on the host side.
func (p *PresetPlugin) GRPCClient(_ context.Context, _ *plugin.GRPCBroker, c *grpc.ClientConn) (interface{}, error) {
	return &GRPCPresetClient{client: NewPresetClient(c)}, nil
}

// GRPCPresetServer wraps a Source to implement PresetServer.
// This runs in the plugin process and handles requests from the host.
type GRPCPresetServer struct {
	impl Source
}

var _ PresetServer = (*GRPCPresetServer)(nil)

// ListPresets returns the names of every preset the plugin serves.
func (s *GRPCPresetServer) ListPresets(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return toProtoNames(s.impl.Names()), nil
}

// GetPreset returns one preset. Unknown references fail with NotFound.
func (s *GRPCPresetServer) GetPreset(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	ref := req.GetValue()
	p, err := s.impl.Preset(ctx, ref)
	if errors.Is(err, ruleset.ErrUnknownPreset) {
		return nil, status.Errorf(codes.NotFound, "unknown preset %q", ref)
	}
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	resp, err := toProtoPreset(p)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

// GRPCPresetClient implements ruleset.Provider on top of a plugin
// connection. This runs in the host process.
type GRPCPresetClient struct {
	client PresetClient
}

var _ ruleset.Provider = (*GRPCPresetClient)(nil)

// Preset fetches ref from the plugin. NotFound maps to
// *ruleset.UnknownPresetError.
func (c *GRPCPresetClient) Preset(ctx context.Context, ref string) (*ruleset.Preset, error) {
	resp, err := c.client.GetPreset(ctx, wrapperspb.String(ref))
	if status.Code(err) == codes.NotFound {
		return nil, &ruleset.UnknownPresetError{Ref: ref}
	}
	if err != nil {
		return nil, err
	}
	return fromProtoPreset(ref, resp)
}

// ListPresets returns the names the plugin serves.
func (c *GRPCPresetClient) ListPresets(ctx context.Context) ([]string, error) {
	resp, err := c.client.ListPresets(ctx, &emptypb.Empty{})
	if err != nil {
		return nil, err
	}
	return fromProtoNames(resp)
}
