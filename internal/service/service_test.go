package service

import (
	"context"
	"io"
	"log"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/born-ml/spatial/internal/batch"
	"github.com/born-ml/spatial/internal/distribution"
	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/kernel"
	"github.com/born-ml/spatial/internal/parallel"
)

// startServer serves srv over an in-memory listener and returns a client.
func startServer(t *testing.T, srv *Server) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer()
	Register(s, srv)
	go func() { _ = s.Serve(lis) }()
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewClientWithConn(conn)
}

func quiet() Option {
	return WithLogger(log.New(io.Discard, "", 0))
}

func TestEvaluate_MatchesLocal(t *testing.T) {
	c := startServer(t, NewServer(quiet()))

	g, err := distribution.Gabor(field.X(), field.Y(), distribution.GaborConfig{Theta: 30, AspectRatio: 1.5, Std: 0.8, Lambda: 2, Psi: 10})
	require.NoError(t, err)
	samples, err := batch.Grid(batch.GridConfig{Rows: 7, Columns: 9, Extent: [2]float64{4, 4}})
	require.NoError(t, err)

	want, err := batch.Evaluate(g, samples)
	require.NoError(t, err)
	got, err := c.Evaluate(context.Background(), g, samples)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEvaluate_Composite(t *testing.T) {
	c := startServer(t, NewServer(quiet(), WithDriver(batch.NewDriver(batch.WithConfig(parallel.Sequential())))))

	e, err := distribution.Exponential(field.Distance(), distribution.ExponentialConfig{Beta: 0.5})
	require.NoError(t, err)
	d, err := distribution.Gaussian(e, distribution.GaussianConfig{Mean: 1, Std: 0.25})
	require.NoError(t, err)

	samples := []field.Sample{{0}, {0.5}, {1}, {2}}
	got, err := c.Evaluate(context.Background(), d, samples)
	require.NoError(t, err)
	for i, s := range samples {
		assert.InDelta(t, d.Value(s), got[i], 1e-12)
	}
}

func TestEvaluate_NoSamples(t *testing.T) {
	c := startServer(t, NewServer(quiet()))
	got, err := c.Evaluate(context.Background(), field.X(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEvaluate_Errors(t *testing.T) {
	reg := kernel.NewRegistry(kernel.Capabilities{})
	c := startServer(t, NewServer(quiet(), WithRegistry(reg)))
	ctx := context.Background()

	tests := []struct {
		name    string
		spec    field.Spec
		samples []field.Sample
		code    codes.Code
	}{
		{
			name:    "unknown kernel",
			spec:    field.Spec{Type: "cauchy", Inputs: []field.Spec{field.X().Spec()}},
			samples: []field.Sample{{0}},
			code:    codes.InvalidArgument,
		},
		{
			name:    "invalid parameter",
			spec:    field.Spec{Type: kernel.TagGaussian, Params: map[string]float64{"mean": 0, "std": 0}, Inputs: []field.Spec{field.X().Spec()}},
			samples: []field.Sample{{0}},
			code:    codes.InvalidArgument,
		},
		{
			name:    "unsupported kernel",
			spec:    field.Spec{Type: kernel.TagGamma, Params: map[string]float64{"kappa": 2, "theta": 1}, Inputs: []field.Spec{field.X().Spec()}},
			samples: []field.Sample{{1}},
			code:    codes.Unimplemented,
		},
		{
			name:    "short sample",
			spec:    field.Y().Spec(),
			samples: []field.Sample{{1, 2}, {3}},
			code:    codes.InvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Evaluate(ctx, specField{tt.spec}, tt.samples)
			require.Error(t, err)
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestEvaluate_MalformedRequest(t *testing.T) {
	srv := NewServer(quiet())
	ctx := context.Background()

	_, err := srv.Evaluate(ctx, &structpb.Struct{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	req, err := structpb.NewStruct(map[string]any{
		"field":   map[string]any{"type": "component", "index": 0},
		"samples": "not a list",
	})
	require.NoError(t, err)
	_, err = srv.Evaluate(ctx, req)
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestEvaluate_Canceled(t *testing.T) {
	srv := NewServer(quiet())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := structpb.NewStruct(map[string]any{
		"field":   map[string]any{"type": "component", "index": 0},
		"samples": []any{[]any{1.0}},
	})
	require.NoError(t, err)
	_, err = srv.Evaluate(ctx, req)
	assert.Equal(t, codes.Canceled, status.Code(err))
}

func TestKernels(t *testing.T) {
	c := startServer(t, NewServer(quiet()))
	tags, err := c.Kernels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, kernel.Default().Tags(), tags)

	limited := startServer(t, NewServer(quiet(), WithRegistry(kernel.NewRegistry(kernel.Capabilities{}))))
	tags, err = limited.Kernels(context.Background())
	require.NoError(t, err)
	assert.NotContains(t, tags, kernel.TagGamma)
	assert.Contains(t, tags, kernel.TagGabor)
}

// specField sends an arbitrary spec without building it locally.
type specField struct{ spec field.Spec }

func (f specField) Value(field.Sample) float64 { return 0 }
func (f specField) Dims() int                  { return 0 }
func (f specField) Spec() field.Spec           { return f.spec }
