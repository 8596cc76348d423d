package distribution

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/born-ml/spatial/internal/field"
)

// FromSpec rebuilds a field tree. Input field types are resolved by the field
// package, every other type is treated as a kernel tag.
func (b *Builder) FromSpec(spec field.Spec) (field.Field, error) {
	if f, ok, err := field.Input(spec); ok {
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
		}
		return f, nil
	}

	inputs := make([]field.Field, len(spec.Inputs))
	for i, in := range spec.Inputs {
		f, err := b.FromSpec(in)
		if err != nil {
			return nil, fmt.Errorf("%s input %d: %w", spec.Type, i, err)
		}
		inputs[i] = f
	}
	return b.Create(spec.Type, spec.Params, inputs...)
}

// FromSpec rebuilds a field tree using the default registry.
func FromSpec(spec field.Spec) (field.Field, error) {
	return defaultBuilder().FromSpec(spec)
}

// Record is a named, identified parameter record: the description of one
// field as created at model-description time.
type Record struct {
	ID        uuid.UUID
	Name      string
	Spec      field.Spec
	CreatedAt time.Time
}

// NewRecord describes f under name with a fresh random ID.
func NewRecord(name string, f field.Field) Record {
	return Record{
		ID:        uuid.New(),
		Name:      name,
		Spec:      f.Spec(),
		CreatedAt: time.Now().UTC(),
	}
}

// Field rebuilds the recorded field through b.
func (r Record) Field(b *Builder) (field.Field, error) {
	f, err := b.FromSpec(r.Spec)
	if err != nil {
		return nil, fmt.Errorf("record %s (%s): %w", r.Name, r.ID, err)
	}
	return f, nil
}
