// Code shape adapted from transmitter_grpc.pb.go (protoc-gen-go-grpc
// output); hand-written here since protoc cannot be invoked in this
// exercise, but the service-descriptor/handler/client pattern is the same.
package rpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SafePolling_Poll_FullMethodName  = "/rpc.SafePolling/Poll"
	SafePolling_Write_FullMethodName = "/rpc.SafePolling/Write"
)

// SafePollingClient is the client API for the safe-polling platform
// contract of spec §6.
type SafePollingClient interface {
	Poll(ctx context.Context, in *PollRequest, opts ...grpc.CallOption) (*PollResponse, error)
	Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error)
}

type safePollingClient struct {
	cc grpc.ClientConnInterface
}

// NewSafePollingClient builds a client for the safe-polling platform
// service at the given connection.
func NewSafePollingClient(cc grpc.ClientConnInterface) SafePollingClient {
	return &safePollingClient{cc}
}

func (c *safePollingClient) Poll(ctx context.Context, in *PollRequest, opts ...grpc.CallOption) (*PollResponse, error) {
	out := new(PollResponse)
	if err := c.cc.Invoke(ctx, SafePolling_Poll_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *safePollingClient) Write(ctx context.Context, in *WriteRequest, opts ...grpc.CallOption) (*WriteResponse, error) {
	out := new(WriteResponse)
	if err := c.cc.Invoke(ctx, SafePolling_Write_FullMethodName, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// SafePollingServer is the server API a platform-side listener implements.
// All implementations must embed UnimplementedSafePollingServer for
// forward compatibility.
type SafePollingServer interface {
	Poll(context.Context, *PollRequest) (*PollResponse, error)
	Write(context.Context, *WriteRequest) (*WriteResponse, error)
	mustEmbedUnimplementedSafePollingServer()
}

// UnimplementedSafePollingServer must be embedded by value to have
// forward-compatible implementations.
type UnimplementedSafePollingServer struct{}

func (UnimplementedSafePollingServer) Poll(context.Context, *PollRequest) (*PollResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Poll not implemented")
}

func (UnimplementedSafePollingServer) Write(context.Context, *WriteRequest) (*WriteResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method Write not implemented")
}

func (UnimplementedSafePollingServer) mustEmbedUnimplementedSafePollingServer() {}

// RegisterSafePollingServer registers srv with s.
func RegisterSafePollingServer(s grpc.ServiceRegistrar, srv SafePollingServer) {
	s.RegisterService(&SafePolling_ServiceDesc, srv)
}

func _SafePolling_Poll_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(PollRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SafePollingServer).Poll(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SafePolling_Poll_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SafePollingServer).Poll(ctx, req.(*PollRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _SafePolling_Write_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(WriteRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SafePollingServer).Write(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SafePolling_Write_FullMethodName}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SafePollingServer).Write(ctx, req.(*WriteRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SafePolling_ServiceDesc is the grpc.ServiceDesc for the SafePolling
// service, matching the shape protoc-gen-go-grpc would have generated.
var SafePolling_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "rpc.SafePolling",
	HandlerType: (*SafePollingServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Poll", Handler: _SafePolling_Poll_Handler},
		{MethodName: "Write", Handler: _SafePolling_Write_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "safepolling.proto",
}
