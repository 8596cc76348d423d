// Package service exposes field evaluation over gRPC.
//
// The service is spatial.v1.Evaluator. Requests and responses are
// google.protobuf.Struct messages, so no generated code is needed:
//
//	rpc Evaluate(google.protobuf.Struct) returns (google.protobuf.Struct);
//	rpc Kernels(google.protobuf.Empty) returns (google.protobuf.Struct);
//
// Evaluate takes {"field": <spec>, "samples": [[x, y], ...]} and answers
// {"values": [...]} in sample order. Specs use the wire package encoding.
package service

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "spatial.v1.Evaluator"

// Full method names.
const (
	MethodEvaluate = "/" + ServiceName + "/Evaluate"
	MethodKernels  = "/" + ServiceName + "/Kernels"
)

// EvaluatorServer is the server API of spatial.v1.Evaluator.
type EvaluatorServer interface {
	Evaluate(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Kernels(context.Context, *emptypb.Empty) (*structpb.Struct, error)
}

// Register registers srv with a gRPC server.
func Register(s grpc.ServiceRegistrar, srv EvaluatorServer) {
	s.RegisterService(&serviceDesc, srv)
}

func evaluateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodEvaluate}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EvaluatorServer).Evaluate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func kernelsHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(EvaluatorServer).Kernels(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: MethodKernels}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(EvaluatorServer).Kernels(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*EvaluatorServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Evaluate", Handler: evaluateHandler},
		{MethodName: "Kernels", Handler: kernelsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "spatial/v1/evaluator.proto",
}
