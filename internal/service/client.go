package service

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/wire"
)

// Client calls a remote spatial.v1.Evaluator.
type Client struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// Dial connects to the evaluator at addr.
func Dial(addr string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Client{conn: conn, cc: conn}, nil
}

// NewClientWithConn creates a client on an existing connection. Close does
// not close cc.
func NewClientWithConn(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Close shuts down the gRPC connection opened by Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// Evaluate evaluates f remotely over samples. Only f's spec is sent; the
// server rebuilds it with its own registry.
func (c *Client) Evaluate(ctx context.Context, f field.Field, samples []field.Sample) ([]float64, error) {
	req := &structpb.Struct{Fields: map[string]*structpb.Value{
		keyField:   structpb.NewStructValue(wire.EncodeSpec(f.Spec())),
		keySamples: structpb.NewListValue(wire.EncodeSamples(samples)),
	}}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodEvaluate, req, resp); err != nil {
		return nil, fmt.Errorf("evaluate rpc: %w", err)
	}

	lv, ok := resp.GetFields()[keyValues].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("evaluate rpc: response has no %q list", keyValues)
	}
	values, err := wire.DecodeValues(lv.ListValue)
	if err != nil {
		return nil, fmt.Errorf("evaluate rpc: %w", err)
	}
	if len(values) != len(samples) {
		return nil, fmt.Errorf("evaluate rpc: got %d values for %d samples", len(values), len(samples))
	}
	return values, nil
}

// Kernels lists the kernel tags the server can build.
func (c *Client) Kernels(ctx context.Context) ([]string, error) {
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, MethodKernels, &emptypb.Empty{}, resp); err != nil {
		return nil, fmt.Errorf("kernels rpc: %w", err)
	}
	lv, ok := resp.GetFields()[keyKernels].GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, fmt.Errorf("kernels rpc: response has no %q list", keyKernels)
	}
	tags := make([]string, 0, len(lv.ListValue.GetValues()))
	for _, v := range lv.ListValue.GetValues() {
		tags = append(tags, v.GetStringValue())
	}
	return tags, nil
}
