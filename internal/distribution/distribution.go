// Package distribution builds spatial distributions: kernels from the kernel
// package bound to their input fields.
//
// Building validates parameters and resolves the kernel; it never evaluates
// anything. The resulting Distribution is an immutable field.Field that can be
// sampled any number of times, concurrently, and used as the input of other
// distributions.
//
// Example:
//
//	d, err := distribution.Gaussian(field.Distance(), distribution.GaussianConfig{Mean: 0, Std: 0.5})
//	if err != nil {
//	    return err
//	}
//	p := d.Value(field.S2(0.3, 0.4))
package distribution

import (
	"fmt"

	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/kernel"
)

// Errors returned by the builders. They are the kernel package sentinels, so
// errors.Is works against either.
var (
	ErrUnknownKernel     = kernel.ErrUnknownKernel
	ErrInvalidParameter  = kernel.ErrInvalidParameter
	ErrUnsupportedKernel = kernel.ErrUnsupportedKernel
)

// Per-kernel configurations. Zero values are not the defaults; start from the
// matching Default*Config function.
type (
	ExponentialConfig = kernel.ExponentialParams
	GaussianConfig    = kernel.GaussianParams
	Gaussian2DConfig  = kernel.Gaussian2DParams
	GammaConfig       = kernel.GammaParams
	GaborConfig       = kernel.GaborParams
)

// DefaultExponentialConfig returns beta=1.
func DefaultExponentialConfig() ExponentialConfig { return kernel.DefaultExponential() }

// DefaultGaussianConfig returns mean=0, std=1.
func DefaultGaussianConfig() GaussianConfig { return kernel.DefaultGaussian() }

// DefaultGaussian2DConfig returns mean_x=0, mean_y=0, theta=0, gamma=1, std=1.
func DefaultGaussian2DConfig() Gaussian2DConfig { return kernel.DefaultGaussian2D() }

// DefaultGammaConfig returns kappa=1, theta=1.
func DefaultGammaConfig() GammaConfig { return kernel.DefaultGamma() }

// DefaultGaborConfig returns theta=0, gamma=1, std=1, lam=1, psi=0.
func DefaultGaborConfig() GaborConfig { return kernel.DefaultGabor() }

// Distribution is a kernel applied to one or two input fields.
type Distribution struct {
	eval   *kernel.Evaluator
	inputs []field.Field
	dims   int
}

var _ field.Field = (*Distribution)(nil)

// Value resolves the inputs at s and evaluates the kernel on them.
func (d *Distribution) Value(s field.Sample) float64 {
	x := d.inputs[0].Value(s)
	var y float64
	if len(d.inputs) > 1 {
		y = d.inputs[1].Value(s)
	}
	return d.eval.Eval(x, y)
}

// Dims returns the number of sample components the inputs read.
func (d *Distribution) Dims() int { return d.dims }

// Kind returns the kernel kind.
func (d *Distribution) Kind() kernel.Kind { return d.eval.Kind() }

// Tag returns the kernel tag.
func (d *Distribution) Tag() string { return d.eval.Kind().String() }

// Config returns the bound kernel parameters.
func (d *Distribution) Config() kernel.Params { return d.eval.Params() }

// Params returns a copy of the parameters keyed by public name.
func (d *Distribution) Params() map[string]float64 { return d.eval.Params().Map() }

// Inputs returns the input fields.
func (d *Distribution) Inputs() []field.Field {
	out := make([]field.Field, len(d.inputs))
	copy(out, d.inputs)
	return out
}

// Spec returns the tree description of the distribution.
func (d *Distribution) Spec() field.Spec {
	inputs := make([]field.Spec, len(d.inputs))
	for i, in := range d.inputs {
		inputs[i] = in.Spec()
	}
	return field.Spec{
		Type:   d.Tag(),
		Params: d.Params(),
		Inputs: inputs,
	}
}

// String renders the distribution as a call expression.
func (d *Distribution) String() string { return d.Spec().String() }

// Builder builds distributions against one kernel registry.
type Builder struct {
	registry *kernel.Registry
}

// NewBuilder creates a builder resolving kernels through r.
func NewBuilder(r *kernel.Registry) *Builder {
	return &Builder{registry: r}
}

// Registry returns the registry the builder resolves kernels through.
func (b *Builder) Registry() *kernel.Registry { return b.registry }

// Exponential applies exp(-x/beta) to x.
func (b *Builder) Exponential(x field.Field, cfg ExponentialConfig) (*Distribution, error) {
	return b.build(cfg, x)
}

// Gaussian applies a gaussian profile to x.
func (b *Builder) Gaussian(x field.Field, cfg GaussianConfig) (*Distribution, error) {
	return b.build(cfg, x)
}

// Gaussian2D applies a bivariate gaussian to the x and y fields.
func (b *Builder) Gaussian2D(x, y field.Field, cfg Gaussian2DConfig) (*Distribution, error) {
	return b.build(cfg, x, y)
}

// Gamma applies the gamma density to x. It fails with ErrUnsupportedKernel
// when the registry has no special-function backend.
func (b *Builder) Gamma(x field.Field, cfg GammaConfig) (*Distribution, error) {
	return b.build(cfg, x)
}

// Gabor applies a rectified Gabor profile to the x and y displacement fields.
func (b *Builder) Gabor(x, y field.Field, cfg GaborConfig) (*Distribution, error) {
	return b.build(cfg, x, y)
}

// Create builds the kernel named by tag. Parameters are given by public name
// and default when absent.
func (b *Builder) Create(tag string, params map[string]float64, inputs ...field.Field) (*Distribution, error) {
	k, err := b.registry.Lookup(tag)
	if err != nil {
		return nil, err
	}
	p, err := kernel.FromMap(k, params)
	if err != nil {
		return nil, err
	}
	return b.build(p, inputs...)
}

func (b *Builder) build(p kernel.Params, inputs ...field.Field) (*Distribution, error) {
	tag := p.Kind().String()
	if want := p.Kind().Arity(); len(inputs) != want {
		return nil, fmt.Errorf("%w: %s takes %d input fields, got %d", ErrInvalidParameter, tag, want, len(inputs))
	}
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("%w: %s: input field %d is nil", ErrInvalidParameter, tag, i)
		}
	}

	ev, err := b.registry.New(p)
	if err != nil {
		return nil, err
	}

	return &Distribution{
		eval:   ev,
		inputs: append([]field.Field(nil), inputs...),
		dims:   field.MaxDims(inputs...),
	}, nil
}

func defaultBuilder() *Builder {
	return NewBuilder(kernel.Default())
}

// Exponential applies exp(-x/beta) to x using the default registry.
func Exponential(x field.Field, cfg ExponentialConfig) (*Distribution, error) {
	return defaultBuilder().Exponential(x, cfg)
}

// Gaussian applies a gaussian profile to x using the default registry.
func Gaussian(x field.Field, cfg GaussianConfig) (*Distribution, error) {
	return defaultBuilder().Gaussian(x, cfg)
}

// Gaussian2D applies a bivariate gaussian using the default registry.
func Gaussian2D(x, y field.Field, cfg Gaussian2DConfig) (*Distribution, error) {
	return defaultBuilder().Gaussian2D(x, y, cfg)
}

// Gamma applies the gamma density to x using the default registry.
func Gamma(x field.Field, cfg GammaConfig) (*Distribution, error) {
	return defaultBuilder().Gamma(x, cfg)
}

// Gabor applies a rectified Gabor profile using the default registry.
func Gabor(x, y field.Field, cfg GaborConfig) (*Distribution, error) {
	return defaultBuilder().Gabor(x, y, cfg)
}

// Create builds the kernel named by tag using the default registry.
func Create(tag string, params map[string]float64, inputs ...field.Field) (*Distribution, error) {
	return defaultBuilder().Create(tag, params, inputs...)
}
