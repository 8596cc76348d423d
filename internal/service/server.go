package service

import (
	"context"
	"errors"
	"log"
	"os"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/born-ml/spatial/internal/batch"
	"github.com/born-ml/spatial/internal/distribution"
	"github.com/born-ml/spatial/internal/kernel"
	"github.com/born-ml/spatial/internal/wire"
)

// Request and response keys.
const (
	keyField   = "field"
	keySamples = "samples"
	keyValues  = "values"
	keyKernels = "kernels"
)

// Option configures a Server.
type Option func(*Server)

// WithRegistry resolves kernels through r instead of kernel.Default().
func WithRegistry(r *kernel.Registry) Option {
	return func(s *Server) {
		s.builder = distribution.NewBuilder(r)
	}
}

// WithDriver evaluates through d.
func WithDriver(d *batch.Driver) Option {
	return func(s *Server) {
		s.driver = d
	}
}

// WithLogger logs failed requests to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// Server implements EvaluatorServer. It is stateless between requests.
type Server struct {
	builder *distribution.Builder
	driver  *batch.Driver
	logger  *log.Logger
}

var _ EvaluatorServer = (*Server)(nil)

// NewServer creates a server.
func NewServer(opts ...Option) *Server {
	s := &Server{
		builder: distribution.NewBuilder(kernel.Default()),
		driver:  batch.NewDriver(),
		logger:  log.New(os.Stderr, "spatial: ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate builds the requested field and evaluates it over the samples.
func (s *Server) Evaluate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	fv, ok := req.GetFields()[keyField].GetKind().(*structpb.Value_StructValue)
	if !ok {
		return nil, s.fail("evaluate", status.Errorf(codes.InvalidArgument, "missing %q object", keyField))
	}
	spec, err := wire.DecodeSpec(fv.StructValue)
	if err != nil {
		return nil, s.fail("evaluate", status.Error(codes.InvalidArgument, err.Error()))
	}

	var samples []*structpb.Value
	if sv, ok := req.GetFields()[keySamples]; ok {
		lv, ok := sv.GetKind().(*structpb.Value_ListValue)
		if !ok {
			return nil, s.fail("evaluate", status.Errorf(codes.InvalidArgument, "%q is not a list", keySamples))
		}
		samples = lv.ListValue.GetValues()
	}
	points, err := wire.DecodeSamples(&structpb.ListValue{Values: samples})
	if err != nil {
		return nil, s.fail("evaluate", status.Error(codes.InvalidArgument, err.Error()))
	}

	f, err := s.builder.FromSpec(spec)
	if err != nil {
		return nil, s.fail("evaluate", statusFromBuild(err))
	}
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}

	values, err := s.driver.Evaluate(f, points)
	if err != nil {
		return nil, s.fail("evaluate", status.Error(codes.InvalidArgument, err.Error()))
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyValues: structpb.NewListValue(wire.EncodeValues(values)),
	}}, nil
}

// Kernels lists the kernel tags the server can build.
func (s *Server) Kernels(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	tags := s.builder.Registry().Tags()
	list := make([]*structpb.Value, len(tags))
	for i, tag := range tags {
		list[i] = structpb.NewStringValue(tag)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		keyKernels: structpb.NewListValue(&structpb.ListValue{Values: list}),
	}}, nil
}

func (s *Server) fail(method string, err error) error {
	if s.logger != nil {
		s.logger.Printf("%s: %v", method, err)
	}
	return err
}

func statusFromBuild(err error) error {
	switch {
	case errors.Is(err, kernel.ErrUnsupportedKernel):
		return status.Error(codes.Unimplemented, err.Error())
	case errors.Is(err, kernel.ErrUnknownKernel), errors.Is(err, kernel.ErrInvalidParameter):
		return status.Error(codes.InvalidArgument, err.Error())
	}
	return status.Error(codes.Internal, err.Error())
}
