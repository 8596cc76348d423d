// Package batch evaluates fields over ordered collections of coordinate
// samples.
//
// Output order always matches input order: value i belongs to sample i,
// whether the samples were split across goroutines or not.
package batch

import (
	"errors"
	"fmt"

	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/parallel"
)

// Errors returned by the driver. Both are detected before any sample is
// evaluated.
var (
	ErrNilField          = errors.New("batch: nil field")
	ErrDimensionMismatch = errors.New("batch: sample dimension mismatch")
)

// DimensionError reports a sample with fewer components than the field reads.
type DimensionError struct {
	Index int // Sample index
	Got   int // Sample components
	Want  int // Field Dims()
}

// Error implements the error interface.
func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: sample %d has %d components, field reads %d", ErrDimensionMismatch, e.Index, e.Got, e.Want)
}

// Unwrap returns ErrDimensionMismatch.
func (e *DimensionError) Unwrap() error { return ErrDimensionMismatch }

// Option configures a Driver.
type Option func(*Driver)

// WithConfig sets the parallel execution config.
func WithConfig(cfg parallel.Config) Option {
	return func(d *Driver) {
		d.cfg = cfg
	}
}

// Driver applies fields to sample sets. A Driver holds no per-call state and
// may be shared.
type Driver struct {
	cfg parallel.Config
}

// NewDriver creates a driver. Without options it uses parallel.DefaultConfig.
func NewDriver(opts ...Option) *Driver {
	d := &Driver{cfg: parallel.DefaultConfig()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Config returns the parallel execution config.
func (d *Driver) Config() parallel.Config { return d.cfg }

// Evaluate returns f evaluated at every sample, out[i] = f.Value(samples[i]).
func (d *Driver) Evaluate(f field.Field, samples []field.Sample) ([]float64, error) {
	if f == nil {
		return nil, ErrNilField
	}
	if err := checkDims(f.Dims(), samples); err != nil {
		return nil, err
	}
	return parallel.Map(len(samples), func(i int) float64 {
		return f.Value(samples[i])
	}, d.cfg), nil
}

// EvaluateAll evaluates several fields over the same samples. Result j holds
// the values of fields[j].
func (d *Driver) EvaluateAll(fields []field.Field, samples []field.Sample) ([][]float64, error) {
	for j, f := range fields {
		if f == nil {
			return nil, fmt.Errorf("field %d: %w", j, ErrNilField)
		}
	}
	if len(fields) > 0 {
		if err := checkDims(field.MaxDims(fields...), samples); err != nil {
			return nil, err
		}
	}

	out := make([][]float64, len(fields))
	n := len(samples)
	for j := range out {
		out[j] = make([]float64, n)
	}
	// One flat index space so small sample sets still spread across workers.
	parallel.For(len(fields)*n, func(k int) {
		j, i := k/n, k%n
		out[j][i] = fields[j].Value(samples[i])
	}, d.cfg)
	return out, nil
}

func checkDims(want int, samples []field.Sample) error {
	for i, s := range samples {
		if len(s) < want {
			return &DimensionError{Index: i, Got: len(s), Want: want}
		}
	}
	return nil
}

// Evaluate evaluates f over samples with a default driver.
func Evaluate(f field.Field, samples []field.Sample) ([]float64, error) {
	return NewDriver().Evaluate(f, samples)
}
