//go:build nospecfunc

package kernel

var builtinSpecialFunctions SpecialFunctions
