// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package distributions_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/spatial/distributions"
)

func TestGaussian(t *testing.T) {
	g, err := distributions.Gaussian(distributions.X(), distributions.DefaultGaussianConfig())
	require.NoError(t, err)
	assert.InDelta(t, 1.0, g.Value(distributions.S1(0)), 1e-12)
	assert.InDelta(t, math.Exp(-0.5), g.Value(distributions.S1(1)), 1e-12)
	assert.Equal(t, distributions.TagGaussian, g.Tag())
}

func TestGabor_OrientationScenario(t *testing.T) {
	g, err := distributions.Gabor(distributions.X(), distributions.Y(),
		distributions.GaborConfig{Theta: 0, AspectRatio: 1, Std: 1, Lambda: 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, g.Value(distributions.S2(0, 0)), 1e-9)
	assert.InDelta(t, 0.0, g.Value(distributions.S2(0, 0.5)), 1e-9)
}

func TestCreate_Errors(t *testing.T) {
	_, err := distributions.Create("cauchy", nil, distributions.X())
	assert.ErrorIs(t, err, distributions.ErrUnknownKernel)

	_, err = distributions.Create(distributions.TagExponential, map[string]float64{"beta": 0}, distributions.X())
	assert.ErrorIs(t, err, distributions.ErrInvalidParameter)
	var pe *distributions.ParameterError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "beta", pe.Param)

	b := distributions.NewBuilder(distributions.NewRegistry(distributions.Capabilities{}))
	_, err = b.Gamma(distributions.X(), distributions.DefaultGammaConfig())
	assert.ErrorIs(t, err, distributions.ErrUnsupportedKernel)
}

func TestFromSpec(t *testing.T) {
	e, err := distributions.Exponential(distributions.Distance(), distributions.ExponentialConfig{Beta: 2})
	require.NoError(t, err)

	f, err := distributions.FromSpec(e.Spec())
	require.NoError(t, err)
	s := distributions.S2(3, 4)
	assert.Equal(t, e.Value(s), f.Value(s))
	assert.InDelta(t, math.Exp(-2.5), f.Value(s), 1e-12)
}
