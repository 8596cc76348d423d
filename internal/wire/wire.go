// Package wire encodes field specs and sample sets as protobuf well-known
// types (google.protobuf.Struct and ListValue).
//
// A spec node is encoded as
//
//	{"type": "gaussian", "params": {"mean": 0, "std": 1}, "inputs": [{"type": "distance"}]}
//
// with "value" set for constants and "index" for components.
package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/born-ml/spatial/internal/field"
)

// ErrMalformedSpec is returned when a message does not describe a spec or a
// sample set.
var ErrMalformedSpec = errors.New("wire: malformed message")

// Field names.
const (
	keyType   = "type"
	keyValue  = "value"
	keyIndex  = "index"
	keyParams = "params"
	keyInputs = "inputs"
)

// maxDepth bounds nesting when decoding untrusted specs.
const maxDepth = 64

// EncodeSpec converts a spec tree to a Struct.
func EncodeSpec(spec field.Spec) *structpb.Struct {
	fields := map[string]*structpb.Value{
		keyType: structpb.NewStringValue(spec.Type),
	}
	switch spec.Type {
	case field.TypeConstant:
		fields[keyValue] = structpb.NewNumberValue(spec.Value)
	case field.TypeComponent:
		fields[keyIndex] = structpb.NewNumberValue(float64(spec.Index))
	}
	if len(spec.Params) > 0 {
		params := make(map[string]*structpb.Value, len(spec.Params))
		for k, v := range spec.Params {
			params[k] = structpb.NewNumberValue(v)
		}
		fields[keyParams] = structpb.NewStructValue(&structpb.Struct{Fields: params})
	}
	if len(spec.Inputs) > 0 {
		inputs := make([]*structpb.Value, len(spec.Inputs))
		for i, in := range spec.Inputs {
			inputs[i] = structpb.NewStructValue(EncodeSpec(in))
		}
		fields[keyInputs] = structpb.NewListValue(&structpb.ListValue{Values: inputs})
	}
	return &structpb.Struct{Fields: fields}
}

// DecodeSpec converts a Struct produced by EncodeSpec back to a spec tree.
func DecodeSpec(s *structpb.Struct) (field.Spec, error) {
	return decodeSpec(s, 0)
}

func decodeSpec(s *structpb.Struct, depth int) (field.Spec, error) {
	if s == nil {
		return field.Spec{}, fmt.Errorf("%w: nil spec", ErrMalformedSpec)
	}
	if depth > maxDepth {
		return field.Spec{}, fmt.Errorf("%w: spec nested deeper than %d", ErrMalformedSpec, maxDepth)
	}

	var spec field.Spec
	t, ok := s.Fields[keyType].GetKind().(*structpb.Value_StringValue)
	if !ok || t.StringValue == "" {
		return field.Spec{}, fmt.Errorf("%w: missing %q", ErrMalformedSpec, keyType)
	}
	spec.Type = t.StringValue

	if v, ok := s.Fields[keyValue]; ok {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return field.Spec{}, fmt.Errorf("%w: %q is not a number", ErrMalformedSpec, keyValue)
		}
		spec.Value = n.NumberValue
	}
	if v, ok := s.Fields[keyIndex]; ok {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
			return field.Spec{}, fmt.Errorf("%w: %q is not an integer", ErrMalformedSpec, keyIndex)
		}
		spec.Index = int(n.NumberValue)
	}
	if v, ok := s.Fields[keyParams]; ok {
		ps, ok := v.GetKind().(*structpb.Value_StructValue)
		if !ok {
			return field.Spec{}, fmt.Errorf("%w: %q is not an object", ErrMalformedSpec, keyParams)
		}
		spec.Params = make(map[string]float64, len(ps.StructValue.GetFields()))
		for name, pv := range ps.StructValue.GetFields() {
			n, ok := pv.GetKind().(*structpb.Value_NumberValue)
			if !ok {
				return field.Spec{}, fmt.Errorf("%w: parameter %q is not a number", ErrMalformedSpec, name)
			}
			spec.Params[name] = n.NumberValue
		}
	}
	if v, ok := s.Fields[keyInputs]; ok {
		lv, ok := v.GetKind().(*structpb.Value_ListValue)
		if !ok {
			return field.Spec{}, fmt.Errorf("%w: %q is not a list", ErrMalformedSpec, keyInputs)
		}
		for i, iv := range lv.ListValue.GetValues() {
			is, ok := iv.GetKind().(*structpb.Value_StructValue)
			if !ok {
				return field.Spec{}, fmt.Errorf("%w: input %d is not an object", ErrMalformedSpec, i)
			}
			in, err := decodeSpec(is.StructValue, depth+1)
			if err != nil {
				return field.Spec{}, err
			}
			spec.Inputs = append(spec.Inputs, in)
		}
	}
	return spec, nil
}

// MarshalSpec encodes a spec to protobuf bytes. Output is deterministic.
func MarshalSpec(spec field.Spec) ([]byte, error) {
	b, err := proto.MarshalOptions{Deterministic: true}.Marshal(EncodeSpec(spec))
	if err != nil {
		return nil, fmt.Errorf("marshal spec: %w", err)
	}
	return b, nil
}

// UnmarshalSpec decodes protobuf bytes written by MarshalSpec.
func UnmarshalSpec(b []byte) (field.Spec, error) {
	var s structpb.Struct
	if err := proto.Unmarshal(b, &s); err != nil {
		return field.Spec{}, fmt.Errorf("%w: %v", ErrMalformedSpec, err)
	}
	return DecodeSpec(&s)
}

// EncodeSamples converts samples to a list of number lists.
func EncodeSamples(samples []field.Sample) *structpb.ListValue {
	out := &structpb.ListValue{Values: make([]*structpb.Value, len(samples))}
	for i, s := range samples {
		out.Values[i] = structpb.NewListValue(EncodeValues(s))
	}
	return out
}

// DecodeSamples converts a list of number lists back to samples.
func DecodeSamples(l *structpb.ListValue) ([]field.Sample, error) {
	out := make([]field.Sample, len(l.GetValues()))
	for i, v := range l.GetValues() {
		lv, ok := v.GetKind().(*structpb.Value_ListValue)
		if !ok {
			return nil, fmt.Errorf("%w: sample %d is not a list", ErrMalformedSpec, i)
		}
		s, err := DecodeValues(lv.ListValue)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		out[i] = s
	}
	return out, nil
}

// EncodeValues converts numbers to a ListValue.
func EncodeValues(values []float64) *structpb.ListValue {
	out := &structpb.ListValue{Values: make([]*structpb.Value, len(values))}
	for i, v := range values {
		out.Values[i] = structpb.NewNumberValue(v)
	}
	return out
}

// DecodeValues converts a ListValue of numbers to a slice.
func DecodeValues(l *structpb.ListValue) ([]float64, error) {
	out := make([]float64, len(l.GetValues()))
	for i, v := range l.GetValues() {
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not a number", ErrMalformedSpec, i)
		}
		out[i] = n.NumberValue
	}
	return out, nil
}
