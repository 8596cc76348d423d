package kernel

import (
	"errors"
	"fmt"
)

// Construction errors. Every failure is reported when a kernel is built,
// never while it is evaluated.
var (
	ErrUnknownKernel     = errors.New("unknown kernel")
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrUnsupportedKernel = errors.New("unsupported kernel")
)

// KernelError reports a kernel tag that cannot be resolved by a registry.
//
//nolint:revive // KernelError is clearer than Error
type KernelError struct {
	Tag    string
	Reason string
	Err    error // ErrUnknownKernel or ErrUnsupportedKernel
}

// Error implements the error interface.
func (e *KernelError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%v %q: %s", e.Err, e.Tag, e.Reason)
	}
	return fmt.Sprintf("%v %q", e.Err, e.Tag)
}

// Unwrap returns the sentinel error.
func (e *KernelError) Unwrap() error { return e.Err }

// ParameterError reports a parameter outside its domain.
type ParameterError struct {
	Kernel string  // Kernel tag
	Param  string  // Public parameter name (e.g. "std", "gamma")
	Value  float64 // Offending value
	Reason string  // Domain that was violated
}

// Error implements the error interface.
func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s: %s=%v: %s", ErrInvalidParameter, e.Kernel, e.Param, e.Value, e.Reason)
}

// Unwrap returns ErrInvalidParameter.
func (e *ParameterError) Unwrap() error { return ErrInvalidParameter }
