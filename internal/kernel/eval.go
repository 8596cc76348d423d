package kernel

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Radians converts an angle in degrees to radians.
func Radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// rotation maps (x, y) into the frame rotated by theta degrees:
//
//	x' =  x cos(theta) + y sin(theta)
//	y' = -x sin(theta) + y cos(theta)
//
// which is the counter-clockwise rotation of the vector by -theta.
func rotation(thetaDeg float64) r2.Rotation {
	return r2.NewRotation(-Radians(thetaDeg), r2.Vec{})
}

// EvalExponential returns exp(-x/beta).
func EvalExponential(x float64, p ExponentialParams) float64 {
	return math.Exp(-x / p.Beta)
}

// EvalGaussian returns exp(-(x-mean)^2 / (2 std^2)).
func EvalGaussian(x float64, p GaussianParams) float64 {
	z := (x - p.Mean) / p.Std
	return math.Exp(-z * z / 2)
}

// EvalGaussian2D returns the bivariate gaussian at (x, y):
// exp(-(gamma^2 x'^2 + y'^2) / (2 std^2)) with (x', y') the displacement from
// the mean rotated by theta.
func EvalGaussian2D(x, y float64, p Gaussian2DParams) float64 {
	return gaussian2D(rotation(p.Theta), x, y, p)
}

func gaussian2D(rot r2.Rotation, x, y float64, p Gaussian2DParams) float64 {
	v := rot.Rotate(r2.Vec{X: x - p.MeanX, Y: y - p.MeanY})
	return envelope(v, p.AspectRatio, p.Std)
}

// EvalGamma returns the gamma density with shape kappa and scale theta at x,
// or 0 for x <= 0.
func EvalGamma(sf SpecialFunctions, x float64, p GammaParams) float64 {
	if x <= 0 {
		return 0
	}
	return sf.GammaPDF(x, p.Kappa, p.Scale)
}

// EvalGabor returns the rectified Gabor profile at (x, y):
// max(0, cos(2 pi y'/lam + psi)) * exp(-(gamma^2 x'^2 + y'^2) / (2 std^2)).
func EvalGabor(x, y float64, p GaborParams) float64 {
	return gabor(rotation(p.Theta), x, y, p)
}

func gabor(rot r2.Rotation, x, y float64, p GaborParams) float64 {
	v := rot.Rotate(r2.Vec{X: x, Y: y})
	c := math.Cos(2*math.Pi*v.Y/p.Lambda + Radians(p.Psi))
	if c <= 0 {
		return 0
	}
	return c * envelope(v, p.AspectRatio, p.Std)
}

// envelope returns exp(-(gamma^2 x^2 + y^2) / (2 std^2)). Coordinates are
// scaled by std before squaring so tiny std cannot underflow to 0/0.
func envelope(v r2.Vec, gamma, std float64) float64 {
	sx := gamma * v.X / std
	sy := v.Y / std
	return math.Exp(-(sx*sx + sy*sy) / 2)
}

// Evaluator is a validated kernel with its constants bound.
// It is immutable and safe for concurrent use.
type Evaluator struct {
	params Params
	fn     func(x, y float64) float64
}

// Params returns the bound parameters.
func (e *Evaluator) Params() Params { return e.params }

// Kind returns the kernel kind.
func (e *Evaluator) Kind() Kind { return e.params.Kind() }

// Eval evaluates the kernel on resolved inputs. y is ignored by one-input
// kernels.
func (e *Evaluator) Eval(x, y float64) float64 { return e.fn(x, y) }

// bind returns the evaluation closure for validated params. Rotations are
// computed once here rather than per sample.
func bind(p Params, sf SpecialFunctions) func(x, y float64) float64 {
	switch p := p.(type) {
	case ExponentialParams:
		return func(x, _ float64) float64 { return EvalExponential(x, p) }
	case GaussianParams:
		return func(x, _ float64) float64 { return EvalGaussian(x, p) }
	case Gaussian2DParams:
		rot := rotation(p.Theta)
		return func(x, y float64) float64 { return gaussian2D(rot, x, y, p) }
	case GammaParams:
		return func(x, _ float64) float64 { return EvalGamma(sf, x, p) }
	case GaborParams:
		rot := rotation(p.Theta)
		return func(x, y float64) float64 { return gabor(rot, x, y, p) }
	}
	panic("kernel: unhandled params type")
}
