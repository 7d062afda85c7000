// Package pb holds the wire contract of the mirror relay. Messages are
// protobuf well-known types so no generated code is needed; the service
// descriptor below is what protoc-gen-go-grpc would emit for
//
//	service Mirror {
//	  rpc Publish(stream google.protobuf.Struct) returns (google.protobuf.Empty);
//	  rpc Watch(google.protobuf.StringValue) returns (stream google.protobuf.Struct);
//	  rpc Sessions(google.protobuf.Empty) returns (google.protobuf.ListValue);
//	}
package pb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const (
	Mirror_Publish_FullMethodName  = "/touchtris.Mirror/Publish"
	Mirror_Watch_FullMethodName    = "/touchtris.Mirror/Watch"
	Mirror_Sessions_FullMethodName = "/touchtris.Mirror/Sessions"
)

// MirrorClient is the client API for the Mirror service.
type MirrorClient interface {
	// Publish streams snapshots of one session. The first snapshot names it.
	Publish(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[structpb.Struct, emptypb.Empty], error)
	// Watch follows a session, starting with its latest snapshot.
	Watch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error)
	// Sessions lists the ids currently being published.
	Sessions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type mirrorClient struct {
	cc grpc.ClientConnInterface
}

func NewMirrorClient(cc grpc.ClientConnInterface) MirrorClient {
	return &mirrorClient{cc}
}

func (c *mirrorClient) Publish(ctx context.Context, opts ...grpc.CallOption) (grpc.ClientStreamingClient[structpb.Struct, emptypb.Empty], error) {
	stream, err := c.cc.NewStream(ctx, &Mirror_ServiceDesc.Streams[0], Mirror_Publish_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	return &grpc.GenericClientStream[structpb.Struct, emptypb.Empty]{ClientStream: stream}, nil
}

func (c *mirrorClient) Watch(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (grpc.ServerStreamingClient[structpb.Struct], error) {
	stream, err := c.cc.NewStream(ctx, &Mirror_ServiceDesc.Streams[1], Mirror_Watch_FullMethodName, opts...)
	if err != nil {
		return nil, err
	}
	x := &grpc.GenericClientStream[wrapperspb.StringValue, structpb.Struct]{ClientStream: stream}
	if err := x.ClientStream.SendMsg(in); err != nil {
		return nil, err
	}
	if err := x.ClientStream.CloseSend(); err != nil {
		return nil, err
	}
	return x, nil
}

func (c *mirrorClient) Sessions(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, Mirror_Sessions_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// MirrorServer is the server API for the Mirror service. Implementations
// must embed UnimplementedMirrorServer.
type MirrorServer interface {
	Publish(grpc.ClientStreamingServer[structpb.Struct, emptypb.Empty]) error
	Watch(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error
	Sessions(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	mustEmbedUnimplementedMirrorServer()
}

type UnimplementedMirrorServer struct{}

func (UnimplementedMirrorServer) Publish(grpc.ClientStreamingServer[structpb.Struct, emptypb.Empty]) error {
	return status.Errorf(codes.Unimplemented, "method Publish not implemented")
}

func (UnimplementedMirrorServer) Watch(*wrapperspb.StringValue, grpc.ServerStreamingServer[structpb.Struct]) error {
	return status.Errorf(codes.Unimplemented, "method Watch not implemented")
}

func (UnimplementedMirrorServer) Sessions(context.Context, *emptypb.Empty) (*structpb.ListValue, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Sessions not implemented")
}

func (UnimplementedMirrorServer) mustEmbedUnimplementedMirrorServer() {}

func RegisterMirrorServer(s grpc.ServiceRegistrar, srv MirrorServer) {
	s.RegisterService(&Mirror_ServiceDesc, srv)
}

func _Mirror_Publish_Handler(srv any, stream grpc.ServerStream) error {
	return srv.(MirrorServer).Publish(&grpc.GenericServerStream[structpb.Struct, emptypb.Empty]{ServerStream: stream})
}

func _Mirror_Watch_Handler(srv any, stream grpc.ServerStream) error {
	m := new(wrapperspb.StringValue)
	if err := stream.RecvMsg(m); err != nil {
		return err
	}
	return srv.(MirrorServer).Watch(m, &grpc.GenericServerStream[wrapperspb.StringValue, structpb.Struct]{ServerStream: stream})
}

func _Mirror_Sessions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(MirrorServer).Sessions(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: Mirror_Sessions_FullMethodName,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(MirrorServer).Sessions(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var Mirror_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "touchtris.Mirror",
	HandlerType: (*MirrorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Sessions",
			Handler:    _Mirror_Sessions_Handler,
		},
	},
	Streams: []grpc.StreamDesc{
		{
			StreamName:    "Publish",
			Handler:       _Mirror_Publish_Handler,
			ClientStreams: true,
		},
		{
			StreamName:    "Watch",
			Handler:       _Mirror_Watch_Handler,
			ServerStreams: true,
		},
	},
	Metadata: "mirror.proto",
}
