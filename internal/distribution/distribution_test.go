package distribution

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/kernel"
)

func TestGaussian_PeakAtMean(t *testing.T) {
	for _, std := range []float64{0.01, 1, 25} {
		d, err := Gaussian(field.X(), GaussianConfig{Mean: 0.75, Std: std})
		require.NoError(t, err)
		assert.Equal(t, 1.0, d.Value(field.S1(0.75)))
	}
}

func TestGaussian_InvalidStd(t *testing.T) {
	for _, std := range []float64{0, -1} {
		d, err := Gaussian(field.X(), GaussianConfig{Std: std})
		assert.Nil(t, d)
		assert.ErrorIs(t, err, ErrInvalidParameter)
	}
}

func TestExponential_AtZero(t *testing.T) {
	for _, beta := range []float64{0.2, 1, 3} {
		d, err := Exponential(field.Distance(), ExponentialConfig{Beta: beta})
		require.NoError(t, err)
		assert.Equal(t, 1.0, d.Value(field.S2(0, 0)))
	}
}

func TestGaussian2D_MatchesProductOfGaussians(t *testing.T) {
	cfg := DefaultGaussian2DConfig()
	cfg.MeanX, cfg.MeanY, cfg.Std = 0.5, -0.25, 0.8

	g2, err := Gaussian2D(field.X(), field.Y(), cfg)
	require.NoError(t, err)
	gx, err := Gaussian(field.X(), GaussianConfig{Mean: 0.5, Std: 0.8})
	require.NoError(t, err)
	gy, err := Gaussian(field.Y(), GaussianConfig{Mean: -0.25, Std: 0.8})
	require.NoError(t, err)

	for _, s := range []field.Sample{{0, 0}, {1, 1}, {-0.3, 0.7}, {2.5, -1.5}} {
		assert.InDelta(t, gx.Value(s)*gy.Value(s), g2.Value(s), 1e-12, "sample %v", s)
	}
}

func TestGabor_Scenario(t *testing.T) {
	d, err := Gabor(field.X(), field.Y(), GaborConfig{Theta: 45, AspectRatio: 2, Std: 1, Lambda: 2, Psi: 0})
	require.NoError(t, err)

	xp, yp := math.Sqrt2/2, -math.Sqrt2/2
	want := math.Max(0, math.Cos(2*math.Pi*yp/2)) * math.Exp(-(4*xp*xp+yp*yp)/2)
	assert.InDelta(t, want, d.Value(field.S2(1, 0)), 1e-9)
}

func TestGabor_NonNegative(t *testing.T) {
	d, err := Gabor(field.X(), field.Y(), GaborConfig{Theta: 10, AspectRatio: 0.5, Std: 2, Lambda: 0.7, Psi: 45})
	require.NoError(t, err)
	for x := -3.0; x <= 3; x += 0.125 {
		for y := -3.0; y <= 3; y += 0.125 {
			assert.GreaterOrEqual(t, d.Value(field.S2(x, y)), 0.0)
		}
	}
}

func TestGamma_Backend(t *testing.T) {
	without := NewBuilder(kernel.NewRegistry(kernel.Capabilities{}))
	d, err := without.Gamma(field.X(), DefaultGammaConfig())
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrUnsupportedKernel)

	_, err = without.Create("gamma", map[string]float64{"kappa": 2}, field.X())
	assert.ErrorIs(t, err, ErrUnsupportedKernel)

	if !kernel.Default().Supports(kernel.Gamma) {
		t.Skip("built without special-function backend")
	}
	d, err = Gamma(field.X(), GammaConfig{Kappa: 2, Scale: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.2707, d.Value(field.S1(2)), 1e-4)
	assert.InDelta(t, 2*math.Exp(-2), d.Value(field.S1(2)), 1e-12)
	assert.Equal(t, 0.0, d.Value(field.S1(0)))
}

func TestBuild_InputChecks(t *testing.T) {
	_, err := Gaussian(nil, DefaultGaussianConfig())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Gabor(field.X(), nil, DefaultGaborConfig())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Create("gaussian2d", nil, field.X())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Create("gaussian", nil, field.X(), field.Y())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCreate(t *testing.T) {
	d, err := Create("gaussian2d", map[string]float64{"gamma": 2, "std": 0.5}, field.X(), field.Y())
	require.NoError(t, err)
	assert.Equal(t, kernel.Gaussian2D, d.Kind())
	assert.Equal(t, "gaussian2d", d.Tag())
	assert.Equal(t, Gaussian2DConfig{AspectRatio: 2, Std: 0.5}, d.Config())
	assert.Equal(t, 2, d.Dims())

	_, err = Create("lognormal", nil, field.X())
	assert.ErrorIs(t, err, ErrUnknownKernel)

	_, err = Create("gaussian", map[string]float64{"sigma": 1}, field.X())
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = Create("exp_distribution", map[string]float64{"beta": -2}, field.X())
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDistribution_Immutable(t *testing.T) {
	d, err := Exponential(field.Distance(), ExponentialConfig{Beta: 2})
	require.NoError(t, err)

	p := d.Params()
	p["beta"] = 100
	assert.Equal(t, 2.0, d.Params()["beta"])

	in := d.Inputs()
	in[0] = field.Constant(5)
	assert.Equal(t, field.Distance(), d.Inputs()[0])

	s := field.S2(3, 4)
	first := d.Value(s)
	assert.InDelta(t, math.Exp(-2.5), first, 1e-12)
	assert.Equal(t, first, d.Value(s))
}

func TestFromSpec_RoundTrip(t *testing.T) {
	inner, err := Exponential(field.Distance(), ExponentialConfig{Beta: 0.5})
	require.NoError(t, err)
	outer, err := Gaussian(inner, GaussianConfig{Mean: 1, Std: 0.25})
	require.NoError(t, err)
	gabor, err := Gabor(field.X(), field.Component(1), GaborConfig{Theta: 30, AspectRatio: 1.5, Std: 1, Lambda: 2, Psi: 90})
	require.NoError(t, err)

	for _, d := range []*Distribution{inner, outer, gabor} {
		spec := d.Spec()
		back, err := FromSpec(spec)
		require.NoError(t, err)
		assert.Equal(t, spec, back.Spec())

		for _, s := range []field.Sample{{0.1, 0.2}, {-1, 0.5}, {2, 2}} {
			assert.Equal(t, d.Value(s), back.Value(s))
		}
	}

	assert.Equal(t, "gaussian(exp_distribution(distance, beta=0.5), mean=1, std=0.25)", outer.String())
}

func TestFromSpec_Errors(t *testing.T) {
	_, err := FromSpec(field.Spec{Type: "gaussian", Inputs: []field.Spec{{Type: "lognormal"}}})
	assert.ErrorIs(t, err, ErrUnknownKernel)

	_, err = FromSpec(field.Spec{Type: "gaussian", Inputs: []field.Spec{{Type: field.TypeComponent, Index: -1}}})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = FromSpec(field.Spec{Type: "gaussian", Params: map[string]float64{"std": 0}, Inputs: []field.Spec{{Type: field.TypeDistance}}})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = FromSpec(field.Spec{Type: "gaussian"})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestRecord(t *testing.T) {
	d, err := Gaussian(field.Distance(), GaussianConfig{Std: 0.3})
	require.NoError(t, err)

	a := NewRecord("conn", d)
	b := NewRecord("conn", d)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "conn", a.Name)
	assert.False(t, a.CreatedAt.IsZero())

	f, err := a.Field(NewBuilder(kernel.Default()))
	require.NoError(t, err)
	assert.Equal(t, d.Value(field.S2(0.1, 0.1)), f.Value(field.S2(0.1, 0.1)))
}
