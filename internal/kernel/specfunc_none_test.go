//go:build nospecfunc

package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: go test -tags nospecfunc ./...

func TestDetectCapabilities_NoSpecialFunctions(t *testing.T) {
	assert.Nil(t, DetectCapabilities().SpecialFunctions)

	r := Default()
	assert.False(t, r.Supports(Gamma))
	assert.NotContains(t, r.Tags(), TagGamma)

	_, err := r.Lookup(TagGamma)
	assert.ErrorIs(t, err, ErrUnsupportedKernel)

	_, err = r.New(DefaultGamma())
	assert.ErrorIs(t, err, ErrUnsupportedKernel)

	// The remaining kernels are unaffected.
	e, err := r.New(DefaultGabor())
	require.NoError(t, err)
	assert.Equal(t, 1.0, e.Eval(0, 0))
}
