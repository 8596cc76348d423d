//go:build !nospecfunc

package kernel

import "gonum.org/v1/gonum/stat/distuv"

var builtinSpecialFunctions SpecialFunctions = gonumSpecialFunctions{}

// gonumSpecialFunctions evaluates densities through gonum's distuv, which
// works in log space on top of math.Lgamma.
type gonumSpecialFunctions struct{}

func (gonumSpecialFunctions) GammaPDF(x, kappa, theta float64) float64 {
	// distuv parameterizes by rate.
	return distuv.Gamma{Alpha: kappa, Beta: 1 / theta}.Prob(x)
}
