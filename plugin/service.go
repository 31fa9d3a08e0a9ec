package plugin

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The PresetProvider service is described over well-known protobuf types,
// so plugins need no generated code:
//
//	service PresetProvider {
//	  rpc ListPresets(google.protobuf.Empty) returns (google.protobuf.ListValue);
//	  rpc GetPreset(google.protobuf.StringValue) returns (google.protobuf.Struct);
//	}
const (
	PresetServiceName         = "lintcfg.PresetProvider"
	listPresetsFullMethodName = "/" + PresetServiceName + "/ListPresets"
	getPresetFullMethodName   = "/" + PresetServiceName + "/GetPreset"
)

// PresetServer is the server API for the PresetProvider service.
type PresetServer interface {
	ListPresets(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	GetPreset(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// PresetClient is the client API for the PresetProvider service.
type PresetClient interface {
	ListPresets(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
	GetPreset(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

// RegisterPresetServer registers srv on s.
func RegisterPresetServer(s grpc.ServiceRegistrar, srv PresetServer) {
	s.RegisterService(&presetServiceDesc, srv)
}

// NewPresetClient returns a PresetClient using cc.
func NewPresetClient(cc grpc.ClientConnInterface) PresetClient {
	return &presetClient{cc: cc}
}

var presetServiceDesc = grpc.ServiceDesc{
	ServiceName: PresetServiceName,
	HandlerType: (*PresetServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListPresets", Handler: listPresetsHandler},
		{MethodName: "GetPreset", Handler: getPresetHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "lintcfg/preset.proto",
}

func listPresetsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PresetServer).ListPresets(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: listPresetsFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PresetServer).ListPresets(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func getPresetHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PresetServer).GetPreset(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getPresetFullMethodName}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(PresetServer).GetPreset(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

type presetClient struct {
	cc grpc.ClientConnInterface
}

func (c *presetClient) ListPresets(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, listPresetsFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *presetClient) GetPreset(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getPresetFullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
