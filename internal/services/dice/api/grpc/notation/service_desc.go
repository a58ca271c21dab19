// Package notation exposes dice notation evaluation over gRPC.
//
// The service has a single unary method whose request and response are
// google.protobuf.StringValue messages: the expression text in, the
// formatted "**{total}** [{trace}]" result out. Seed replay, locale
// selection and request correlation travel as metadata.
package notation

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "aria.dice.v1.NotationService"

// EvaluateMethod is the full method name of Evaluate.
const EvaluateMethod = "/" + ServiceName + "/Evaluate"

// NotationServiceServer is the server API for the notation service.
type NotationServiceServer interface {
	Evaluate(context.Context, *wrapperspb.StringValue) (*wrapperspb.StringValue, error)
}

// NotationServiceClient is the client API for the notation service.
type NotationServiceClient interface {
	Evaluate(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
}

// ServiceDesc describes the notation service for grpc.ServiceRegistrar.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NotationServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Evaluate",
			Handler:    evaluateHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "aria/dice/v1/notation.proto",
}

// RegisterNotationServiceServer registers srv on s.
func RegisterNotationServiceServer(s grpc.ServiceRegistrar, srv NotationServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func evaluateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NotationServiceServer).Evaluate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: EvaluateMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NotationServiceServer).Evaluate(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

type notationServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewNotationServiceClient returns a client stub over cc.
func NewNotationServiceClient(cc grpc.ClientConnInterface) NotationServiceClient {
	return &notationServiceClient{cc: cc}
}

func (c *notationServiceClient) Evaluate(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	if err := c.cc.Invoke(ctx, EvaluateMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
