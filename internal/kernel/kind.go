// Package kernel implements the spatial distribution kernels and the registry
// that resolves kernel tags.
//
// Supported kernels:
//   - exp_distribution: exp(-x/beta)
//   - gaussian: exp(-(x-mean)^2 / (2 std^2))
//   - gaussian2d: rotated anisotropic bivariate gaussian
//   - gamma: gamma probability density (needs a special-function backend)
//   - gabor: rectified Gabor profile
//
// Evaluators are pure functions of their inputs and parameters. Parameter
// domains are checked by Validate before a kernel is ever evaluated.
package kernel

import "fmt"

// Kind identifies one of the supported kernels.
type Kind int

// Kernel kinds.
const (
	Exponential Kind = iota
	Gaussian
	Gaussian2D
	Gamma
	Gabor
)

// Kernel tags as used by model descriptions and serialized specs.
const (
	TagExponential = "exp_distribution"
	TagGaussian    = "gaussian"
	TagGaussian2D  = "gaussian2d"
	TagGamma       = "gamma"
	TagGabor       = "gabor"
)

var kindTags = [...]string{
	Exponential: TagExponential,
	Gaussian:    TagGaussian,
	Gaussian2D:  TagGaussian2D,
	Gamma:       TagGamma,
	Gabor:       TagGabor,
}

// allKinds lists every kind in declaration order.
var allKinds = []Kind{Exponential, Gaussian, Gaussian2D, Gamma, Gabor}

// String returns the kernel tag.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindTags) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindTags[k]
}

// Arity returns the number of input fields the kernel takes.
func (k Kind) Arity() int {
	switch k {
	case Gaussian2D, Gabor:
		return 2
	default:
		return 1
	}
}

// NeedsSpecialFunctions reports whether evaluating the kernel requires a
// special-function backend.
func (k Kind) NeedsSpecialFunctions() bool {
	return k == Gamma
}

// ParamNames returns the public parameter names of the kernel in
// declaration order.
func (k Kind) ParamNames() []string {
	switch k {
	case Exponential:
		return []string{"beta"}
	case Gaussian:
		return []string{"mean", "std"}
	case Gaussian2D:
		return []string{"mean_x", "mean_y", "theta", "gamma", "std"}
	case Gamma:
		return []string{"kappa", "theta"}
	case Gabor:
		return []string{"theta", "gamma", "std", "lam", "psi"}
	}
	return nil
}
