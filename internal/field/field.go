// Package field defines scalar fields over spatial coordinate samples.
//
// A Field maps a Sample (a point or displacement) to a real number. Fields are
// immutable and safe to share between goroutines; evaluating one never
// changes it. Distributions built by the distribution package are Fields too,
// and take other Fields as their inputs.
package field

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Sample is one coordinate sample: a point or a displacement in 1D, 2D or
// higher dimensional space. Components are ordered x, y, z.
type Sample []float64

// S1 returns a one dimensional sample.
func S1(x float64) Sample { return Sample{x} }

// S2 returns a two dimensional sample.
func S2(x, y float64) Sample { return Sample{x, y} }

// Field is a lazily evaluated scalar function of a coordinate sample.
type Field interface {
	// Value evaluates the field at s. s must have at least Dims() components.
	Value(s Sample) float64

	// Dims returns the minimum number of sample components Value reads.
	Dims() int

	// Spec returns a serializable description of the field.
	Spec() Spec
}

// Input field type tags.
const (
	TypeConstant  = "constant"
	TypeComponent = "component"
	TypeDistance  = "distance"
)

// Spec is the tree form of a Field. Kernel nodes carry the kernel tag as Type,
// their constants in Params and their input fields in Inputs.
type Spec struct {
	Type   string             `json:"type" yaml:"type"`
	Value  float64            `json:"value,omitempty" yaml:"value,omitempty"`
	Index  int                `json:"index,omitempty" yaml:"index,omitempty"`
	Params map[string]float64 `json:"params,omitempty" yaml:"params,omitempty"`
	Inputs []Spec             `json:"inputs,omitempty" yaml:"inputs,omitempty"`
}

// String renders the spec as a call expression, e.g. gaussian(distance, mean=0, std=1).
func (s Spec) String() string {
	switch s.Type {
	case TypeConstant:
		return fmt.Sprintf("%g", s.Value)
	case TypeComponent:
		return componentName(s.Index)
	case TypeDistance:
		return TypeDistance
	}

	parts := make([]string, 0, len(s.Inputs)+len(s.Params))
	for _, in := range s.Inputs {
		parts = append(parts, in.String())
	}
	for _, name := range slices.Sorted(maps.Keys(s.Params)) {
		parts = append(parts, fmt.Sprintf("%s=%g", name, s.Params[name]))
	}
	return s.Type + "(" + strings.Join(parts, ", ") + ")"
}

// constant is a field with the same value everywhere.
type constant float64

// Constant returns a field evaluating to v for every sample.
func Constant(v float64) Field { return constant(v) }

func (c constant) Value(Sample) float64 { return float64(c) }
func (c constant) Dims() int            { return 0 }
func (c constant) Spec() Spec           { return Spec{Type: TypeConstant, Value: float64(c)} }

// component reads a single coordinate of the sample.
type component int

// Component returns a field reading the i-th coordinate of a sample.
// It panics if i is negative.
func Component(i int) Field {
	if i < 0 {
		panic(fmt.Sprintf("field: negative component index %d", i))
	}
	return component(i)
}

// X returns the field reading the first coordinate of a sample.
func X() Field { return component(0) }

// Y returns the field reading the second coordinate of a sample.
func Y() Field { return component(1) }

func (c component) Value(s Sample) float64 { return s[c] }
func (c component) Dims() int              { return int(c) + 1 }
func (c component) Spec() Spec             { return Spec{Type: TypeComponent, Index: int(c)} }

// distance is the Euclidean norm of the sample.
type distance struct{}

// Distance returns the field evaluating to the Euclidean length of a sample.
// Applied to displacements it yields the source-target distance.
func Distance() Field { return distance{} }

func (distance) Value(s Sample) float64 { return floats.Norm(s, 2) }
func (distance) Dims() int              { return 1 }
func (distance) Spec() Spec             { return Spec{Type: TypeDistance} }

// Input rebuilds one of the input fields of this package from its spec.
// The boolean is false when spec.Type is not an input field type.
func Input(spec Spec) (Field, bool, error) {
	switch spec.Type {
	case TypeConstant:
		if math.IsNaN(spec.Value) || math.IsInf(spec.Value, 0) {
			return nil, true, fmt.Errorf("field: constant must be finite, got %v", spec.Value)
		}
		return Constant(spec.Value), true, nil
	case TypeComponent:
		if spec.Index < 0 {
			return nil, true, fmt.Errorf("field: negative component index %d", spec.Index)
		}
		return Component(spec.Index), true, nil
	case TypeDistance:
		return Distance(), true, nil
	}
	return nil, false, nil
}

// MaxDims returns the largest Dims over fs.
func MaxDims(fs ...Field) int {
	n := 0
	for _, f := range fs {
		n = max(n, f.Dims())
	}
	return n
}

func componentName(i int) string {
	switch i {
	case 0:
		return "x"
	case 1:
		return "y"
	case 2:
		return "z"
	}
	return fmt.Sprintf("component[%d]", i)
}
