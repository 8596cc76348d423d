// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package distributions

import (
	"github.com/born-ml/spatial/internal/distribution"
	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/kernel"
)

// Fields

// Field is a scalar function of a coordinate sample.
type Field = field.Field

// Sample is an ordered tuple of coordinates.
type Sample = field.Sample

// Spec is the serializable tree form of a Field.
type Spec = field.Spec

// S1 returns a one-component sample.
func S1(x float64) Sample { return field.S1(x) }

// S2 returns a two-component sample.
func S2(x, y float64) Sample { return field.S2(x, y) }

// Constant returns a field with value v everywhere.
func Constant(v float64) Field { return field.Constant(v) }

// Component returns the field reading sample component i.
func Component(i int) Field { return field.Component(i) }

// X returns the field reading the first sample component.
func X() Field { return field.X() }

// Y returns the field reading the second sample component.
func Y() Field { return field.Y() }

// Distance returns the Euclidean norm of the sample.
func Distance() Field { return field.Distance() }

// Kernels

// Kind identifies a kernel.
type Kind = kernel.Kind

// Kernel tags accepted by Create.
const (
	TagExponential = kernel.TagExponential
	TagGaussian    = kernel.TagGaussian
	TagGaussian2D  = kernel.TagGaussian2D
	TagGamma       = kernel.TagGamma
	TagGabor       = kernel.TagGabor
)

// Registry resolves kernel tags to buildable kernels.
type Registry = kernel.Registry

// Capabilities describes optional numerical support of a build.
type Capabilities = kernel.Capabilities

// NewRegistry creates a registry limited to caps.
func NewRegistry(caps Capabilities) *Registry { return kernel.NewRegistry(caps) }

// DefaultRegistry returns the registry for this build's capabilities.
func DefaultRegistry() *Registry { return kernel.Default() }

// Errors

// Construction errors.
var (
	ErrUnknownKernel     = kernel.ErrUnknownKernel
	ErrInvalidParameter  = kernel.ErrInvalidParameter
	ErrUnsupportedKernel = kernel.ErrUnsupportedKernel
)

// ParameterError reports a parameter outside its domain.
type ParameterError = kernel.ParameterError

// KernelError reports a kernel tag that cannot be built.
type KernelError = kernel.KernelError

// Distributions

// Distribution is a kernel applied to input fields.
type Distribution = distribution.Distribution

// Builder constructs distributions against a registry.
type Builder = distribution.Builder

// NewBuilder creates a builder using r.
func NewBuilder(r *Registry) *Builder { return distribution.NewBuilder(r) }

// ExponentialConfig holds the exponential kernel parameters.
type ExponentialConfig = distribution.ExponentialConfig

// GaussianConfig holds the gaussian kernel parameters.
type GaussianConfig = distribution.GaussianConfig

// Gaussian2DConfig holds the bivariate gaussian kernel parameters.
type Gaussian2DConfig = distribution.Gaussian2DConfig

// GammaConfig holds the gamma kernel parameters.
type GammaConfig = distribution.GammaConfig

// GaborConfig holds the Gabor kernel parameters.
type GaborConfig = distribution.GaborConfig

// DefaultExponentialConfig returns beta=1.
func DefaultExponentialConfig() ExponentialConfig { return distribution.DefaultExponentialConfig() }

// DefaultGaussianConfig returns mean=0, std=1.
func DefaultGaussianConfig() GaussianConfig { return distribution.DefaultGaussianConfig() }

// DefaultGaussian2DConfig returns the bivariate gaussian defaults.
func DefaultGaussian2DConfig() Gaussian2DConfig { return distribution.DefaultGaussian2DConfig() }

// DefaultGammaConfig returns kappa=1, theta=1.
func DefaultGammaConfig() GammaConfig { return distribution.DefaultGammaConfig() }

// DefaultGaborConfig returns the Gabor defaults.
func DefaultGaborConfig() GaborConfig { return distribution.DefaultGaborConfig() }

// Exponential creates exp(-x/beta).
func Exponential(x Field, cfg ExponentialConfig) (*Distribution, error) {
	return distribution.Exponential(x, cfg)
}

// Gaussian creates a gaussian over x.
func Gaussian(x Field, cfg GaussianConfig) (*Distribution, error) {
	return distribution.Gaussian(x, cfg)
}

// Gaussian2D creates a rotated bivariate gaussian over (x, y).
func Gaussian2D(x, y Field, cfg Gaussian2DConfig) (*Distribution, error) {
	return distribution.Gaussian2D(x, y, cfg)
}

// Gamma creates a gamma density over x.
func Gamma(x Field, cfg GammaConfig) (*Distribution, error) {
	return distribution.Gamma(x, cfg)
}

// Gabor creates a rectified Gabor profile over (x, y).
func Gabor(x, y Field, cfg GaborConfig) (*Distribution, error) {
	return distribution.Gabor(x, y, cfg)
}

// Create builds a distribution by kernel tag. Missing parameters take their
// defaults.
func Create(tag string, params map[string]float64, inputs ...Field) (*Distribution, error) {
	return distribution.Create(tag, params, inputs...)
}

// FromSpec rebuilds a field from its description.
func FromSpec(spec Spec) (Field, error) {
	return distribution.FromSpec(spec)
}
