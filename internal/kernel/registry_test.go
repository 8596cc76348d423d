package kernel

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSpecialFunctions stands in for a backend so gamma can be tested with
// either build tag.
type fakeSpecialFunctions struct{}

func (fakeSpecialFunctions) GammaPDF(x, kappa, theta float64) float64 {
	lg, _ := math.Lgamma(kappa)
	return math.Exp((kappa-1)*math.Log(x) - x/theta - lg - kappa*math.Log(theta))
}

func TestRegistry_Lookup(t *testing.T) {
	r := NewRegistry(Capabilities{SpecialFunctions: fakeSpecialFunctions{}})

	for _, tag := range []string{"exp_distribution", "gaussian", "gaussian2d", "gamma", "gabor"} {
		k, err := r.Lookup(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, tag, k.String())
	}

	_, err := r.Lookup("lognormal")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownKernel)

	var ke *KernelError
	require.True(t, errors.As(err, &ke))
	assert.Equal(t, "lognormal", ke.Tag)

	// Tags are case sensitive and the python function names are not tags.
	for _, tag := range []string{"Gaussian", "exponential", "gaussian2D", ""} {
		_, err := r.Lookup(tag)
		assert.ErrorIs(t, err, ErrUnknownKernel, tag)
	}
}

func TestRegistry_WithoutSpecialFunctions(t *testing.T) {
	r := NewRegistry(Capabilities{})

	_, err := r.Lookup("gamma")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedKernel)
	assert.False(t, r.Supports(Gamma))
	assert.True(t, r.Supports(Gaussian))

	_, err = r.New(DefaultGamma())
	assert.ErrorIs(t, err, ErrUnsupportedKernel)

	assert.Equal(t, []Kind{Exponential, Gaussian, Gaussian2D, Gabor}, r.Kinds())
	assert.Equal(t, []string{"exp_distribution", "gabor", "gaussian", "gaussian2d"}, r.Tags())

	ev, err := r.New(DefaultGaussian())
	require.NoError(t, err)
	assert.Equal(t, 1.0, ev.Eval(0, 0))
}

func TestRegistry_New(t *testing.T) {
	r := NewRegistry(Capabilities{SpecialFunctions: fakeSpecialFunctions{}})

	_, err := r.New(GaussianParams{Std: 0})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = r.New(GaussianParams{Std: -1})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	ev, err := r.New(GammaParams{Kappa: 2, Scale: 1})
	require.NoError(t, err)
	assert.Equal(t, Gamma, ev.Kind())
	assert.InDelta(t, 2*math.Exp(-2), ev.Eval(2, 0), tol)

	g2, err := r.New(Gaussian2DParams{Theta: 20, AspectRatio: 1.5, Std: 0.8, MeanX: 0.1})
	require.NoError(t, err)
	assert.InDelta(t, EvalGaussian2D(0.4, -0.3, g2.Params().(Gaussian2DParams)), g2.Eval(0.4, -0.3), 1e-15)

	gb, err := r.New(GaborParams{Theta: 45, AspectRatio: 2, Std: 1, Lambda: 2})
	require.NoError(t, err)
	assert.InDelta(t, EvalGabor(0.3, 0.9, gb.Params().(GaborParams)), gb.Eval(0.3, 0.9), 1e-15)
}

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	assert.Same(t, r, Default())
	assert.Equal(t, DetectCapabilities().SpecialFunctions != nil, r.Supports(Gamma))
}

func TestKind(t *testing.T) {
	assert.Equal(t, 1, Exponential.Arity())
	assert.Equal(t, 1, Gamma.Arity())
	assert.Equal(t, 2, Gaussian2D.Arity())
	assert.Equal(t, 2, Gabor.Arity())
	assert.True(t, Gamma.NeedsSpecialFunctions())
	assert.False(t, Gabor.NeedsSpecialFunctions())
	assert.Equal(t, "Kind(9)", Kind(9).String())
	assert.Nil(t, Kind(9).ParamNames())
}
