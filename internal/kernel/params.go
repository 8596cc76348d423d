package kernel

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Params is the parameter record of one kernel. The set of implementations
// is closed: ExponentialParams, GaussianParams, Gaussian2DParams,
// GammaParams and GaborParams.
type Params interface {
	// Kind returns the kernel the parameters belong to.
	Kind() Kind

	// Validate checks every parameter against its domain.
	Validate() error

	// Map returns the parameters keyed by their public names.
	Map() map[string]float64

	isParams()
}

// ExponentialParams parameterizes exp(-x/beta).
type ExponentialParams struct {
	Beta float64 // Scale, > 0
}

// GaussianParams parameterizes a 1D gaussian profile.
type GaussianParams struct {
	Mean float64
	Std  float64 // > 0
}

// Gaussian2DParams parameterizes a rotated anisotropic bivariate gaussian.
//
// AspectRatio is published as "gamma"; it scales the spread along the
// rotated x axis.
type Gaussian2DParams struct {
	MeanX       float64
	MeanY       float64
	Theta       float64 // Orientation in degrees
	AspectRatio float64 // > 0
	Std         float64 // > 0
}

// GammaParams parameterizes the gamma density. Scale is published as "theta".
type GammaParams struct {
	Kappa float64 // Shape, > 0
	Scale float64 // > 0
}

// GaborParams parameterizes the rectified Gabor profile.
type GaborParams struct {
	Theta       float64 // Orientation in degrees
	AspectRatio float64 // Published as "gamma", > 0
	Std         float64 // > 0
	Lambda      float64 // Wavelength, published as "lam", > 0
	Psi         float64 // Phase in degrees
}

// DefaultExponential returns beta=1.
func DefaultExponential() ExponentialParams { return ExponentialParams{Beta: 1} }

// DefaultGaussian returns mean=0, std=1.
func DefaultGaussian() GaussianParams { return GaussianParams{Mean: 0, Std: 1} }

// DefaultGaussian2D returns mean_x=0, mean_y=0, theta=0, gamma=1, std=1.
func DefaultGaussian2D() Gaussian2DParams {
	return Gaussian2DParams{AspectRatio: 1, Std: 1}
}

// DefaultGamma returns kappa=1, theta=1.
func DefaultGamma() GammaParams { return GammaParams{Kappa: 1, Scale: 1} }

// DefaultGabor returns theta=0, gamma=1, std=1, lam=1, psi=0.
func DefaultGabor() GaborParams {
	return GaborParams{AspectRatio: 1, Std: 1, Lambda: 1}
}

// Defaults returns the default parameters of k.
func Defaults(k Kind) (Params, error) {
	switch k {
	case Exponential:
		return DefaultExponential(), nil
	case Gaussian:
		return DefaultGaussian(), nil
	case Gaussian2D:
		return DefaultGaussian2D(), nil
	case Gamma:
		return DefaultGamma(), nil
	case Gabor:
		return DefaultGabor(), nil
	}
	return nil, &KernelError{Tag: k.String(), Err: ErrUnknownKernel}
}

// Kind returns Exponential.
func (ExponentialParams) Kind() Kind { return Exponential }

// Kind returns Gaussian.
func (GaussianParams) Kind() Kind { return Gaussian }

// Kind returns Gaussian2D.
func (Gaussian2DParams) Kind() Kind { return Gaussian2D }

// Kind returns Gamma.
func (GammaParams) Kind() Kind { return Gamma }

// Kind returns Gabor.
func (GaborParams) Kind() Kind { return Gabor }

func (ExponentialParams) isParams() {}
func (GaussianParams) isParams()    {}
func (Gaussian2DParams) isParams()  {}
func (GammaParams) isParams()       {}
func (GaborParams) isParams()       {}

// Map returns the parameters under their public names (beta).
func (p ExponentialParams) Map() map[string]float64 {
	return map[string]float64{"beta": p.Beta}
}

// Map returns the parameters under their public names (mean, std).
func (p GaussianParams) Map() map[string]float64 {
	return map[string]float64{"mean": p.Mean, "std": p.Std}
}

// Map returns the parameters under their public names (mean_x, mean_y, theta, gamma, std).
func (p Gaussian2DParams) Map() map[string]float64 {
	return map[string]float64{
		"mean_x": p.MeanX,
		"mean_y": p.MeanY,
		"theta":  p.Theta,
		"gamma":  p.AspectRatio,
		"std":    p.Std,
	}
}

// Map returns the parameters under their public names (kappa, theta).
func (p GammaParams) Map() map[string]float64 {
	return map[string]float64{"kappa": p.Kappa, "theta": p.Scale}
}

// Map returns the parameters under their public names (theta, gamma, std, lam, psi).
func (p GaborParams) Map() map[string]float64 {
	return map[string]float64{
		"theta": p.Theta,
		"gamma": p.AspectRatio,
		"std":   p.Std,
		"lam":   p.Lambda,
		"psi":   p.Psi,
	}
}

// check accumulates the first domain violation for one kernel.
type check struct {
	tag string
	err error
}

func (c *check) finite(name string, v float64) {
	if c.err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
		c.err = &ParameterError{Kernel: c.tag, Param: name, Value: v, Reason: "must be finite"}
	}
}

func (c *check) positive(name string, v float64) {
	c.finite(name, v)
	if c.err == nil && v <= 0 {
		c.err = &ParameterError{Kernel: c.tag, Param: name, Value: v, Reason: "must be > 0"}
	}
}

// Validate checks parameter domains. beta must be positive.
func (p ExponentialParams) Validate() error {
	c := check{tag: TagExponential}
	c.positive("beta", p.Beta)
	return c.err
}

// Validate checks parameter domains. mean must be finite and std positive.
func (p GaussianParams) Validate() error {
	c := check{tag: TagGaussian}
	c.finite("mean", p.Mean)
	c.positive("std", p.Std)
	return c.err
}

// Validate checks parameter domains. The means and theta must be finite; gamma and std positive.
func (p Gaussian2DParams) Validate() error {
	c := check{tag: TagGaussian2D}
	c.finite("mean_x", p.MeanX)
	c.finite("mean_y", p.MeanY)
	c.finite("theta", p.Theta)
	c.positive("gamma", p.AspectRatio)
	c.positive("std", p.Std)
	return c.err
}

// Validate checks parameter domains. kappa and theta must be positive.
func (p GammaParams) Validate() error {
	c := check{tag: TagGamma}
	c.positive("kappa", p.Kappa)
	c.positive("theta", p.Scale)
	return c.err
}

// Validate checks parameter domains. theta and psi must be finite; gamma, std and lam positive.
func (p GaborParams) Validate() error {
	c := check{tag: TagGabor}
	c.finite("theta", p.Theta)
	c.positive("gamma", p.AspectRatio)
	c.positive("std", p.Std)
	c.positive("lam", p.Lambda)
	c.finite("psi", p.Psi)
	return c.err
}

// FromMap builds the parameters of k from public names, starting from the
// defaults. Unknown names are rejected; domains are not checked here.
func FromMap(k Kind, values map[string]float64) (Params, error) {
	names := k.ParamNames()
	if names == nil {
		return nil, &KernelError{Tag: k.String(), Err: ErrUnknownKernel}
	}
	for _, name := range slices.Sorted(maps.Keys(values)) {
		if !slices.Contains(names, name) {
			return nil, &ParameterError{
				Kernel: k.String(),
				Param:  name,
				Value:  values[name],
				Reason: fmt.Sprintf("unknown parameter, expected one of %v", names),
			}
		}
	}

	get := func(name string, def float64) float64 {
		if v, ok := values[name]; ok {
			return v
		}
		return def
	}

	switch k {
	case Exponential:
		d := DefaultExponential()
		return ExponentialParams{Beta: get("beta", d.Beta)}, nil
	case Gaussian:
		d := DefaultGaussian()
		return GaussianParams{Mean: get("mean", d.Mean), Std: get("std", d.Std)}, nil
	case Gaussian2D:
		d := DefaultGaussian2D()
		return Gaussian2DParams{
			MeanX:       get("mean_x", d.MeanX),
			MeanY:       get("mean_y", d.MeanY),
			Theta:       get("theta", d.Theta),
			AspectRatio: get("gamma", d.AspectRatio),
			Std:         get("std", d.Std),
		}, nil
	case Gamma:
		d := DefaultGamma()
		return GammaParams{Kappa: get("kappa", d.Kappa), Scale: get("theta", d.Scale)}, nil
	case Gabor:
		d := DefaultGabor()
		return GaborParams{
			Theta:       get("theta", d.Theta),
			AspectRatio: get("gamma", d.AspectRatio),
			Std:         get("std", d.Std),
			Lambda:      get("lam", d.Lambda),
			Psi:         get("psi", d.Psi),
		}, nil
	}
	return nil, &KernelError{Tag: k.String(), Err: ErrUnknownKernel}
}
