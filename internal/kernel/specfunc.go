package kernel

// SpecialFunctions is the special-function backend the gamma kernel needs.
type SpecialFunctions interface {
	// GammaPDF returns the gamma density with shape kappa and scale theta
	// at x > 0.
	GammaPDF(x, kappa, theta float64) float64
}

// Capabilities describes the optional backends available to a registry.
type Capabilities struct {
	// SpecialFunctions is nil when no backend is compiled in.
	SpecialFunctions SpecialFunctions
}

// DetectCapabilities reports the backends compiled into this binary.
// Build with -tags nospecfunc to leave the special-function backend out.
func DetectCapabilities() Capabilities {
	return Capabilities{SpecialFunctions: builtinSpecialFunctions}
}
