// Package config loads YAML model descriptions: named fields, the samples
// to evaluate them over and the parallel execution settings.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/spatial/internal/batch"
	"github.com/born-ml/spatial/internal/distribution"
	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/parallel"
)

// ErrInvalidConfig is returned for model descriptions that cannot be built.
var ErrInvalidConfig = errors.New("config: invalid model description")

// Model is the top-level YAML document.
type Model struct {
	Parallel *Parallel     `yaml:"parallel,omitempty"`
	Fields   []FieldConfig `yaml:"fields"`
	Samples  Samples       `yaml:"samples"`
}

// Parallel mirrors parallel.Config.
type Parallel struct {
	Enabled  bool `yaml:"enabled"`
	Workers  int  `yaml:"workers,omitempty"`
	MinChunk int  `yaml:"min_chunk,omitempty"`
}

// FieldConfig describes one named field. Kernel is a kernel tag or an input
// field type (constant, component, distance). Value and Index apply to
// constant and component fields only.
type FieldConfig struct {
	Name   string             `yaml:"name"`
	Kernel string             `yaml:"kernel"`
	Value  float64            `yaml:"value,omitempty"`
	Index  int                `yaml:"index,omitempty"`
	Params map[string]float64 `yaml:"params,omitempty"`
	Inputs []field.Spec       `yaml:"inputs,omitempty"`
}

// Spec returns the field tree described by fc.
func (fc FieldConfig) Spec() field.Spec {
	return field.Spec{Type: fc.Kernel, Value: fc.Value, Index: fc.Index, Params: fc.Params, Inputs: fc.Inputs}
}

// Samples lists where fields are evaluated. Grid positions come first, then
// Points. With Source set, every position is replaced by its displacement
// from Source.
type Samples struct {
	Grid   *Grid       `yaml:"grid,omitempty"`
	Source []float64   `yaml:"source,omitempty"`
	Points [][]float64 `yaml:"points,omitempty"`
}

// Grid mirrors batch.GridConfig. With EdgeWrap, displacements from Source
// are periodic over the extent.
type Grid struct {
	Rows     int        `yaml:"rows"`
	Columns  int        `yaml:"columns"`
	Extent   [2]float64 `yaml:"extent,omitempty"`
	Center   [2]float64 `yaml:"center,omitempty"`
	EdgeWrap bool       `yaml:"edge_wrap,omitempty"`
}

// Evaluation is a built model, ready for a batch.Driver.
type Evaluation struct {
	Names    []string
	Fields   []field.Field
	Samples  []field.Sample
	Parallel parallel.Config
}

// Load reads and parses the model description at path.
func Load(path string) (*Model, error) {
	//nolint:gosec // Reading a user-specified model file is intentional.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes a YAML model description. Unknown keys are rejected.
func Parse(data []byte) (*Model, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var m Model
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the structure of the description. Kernel parameters are
// checked by Build.
func (m *Model) Validate() error {
	if len(m.Fields) == 0 {
		return fmt.Errorf("%w: no fields", ErrInvalidConfig)
	}
	seen := make(map[string]bool, len(m.Fields))
	for i, fc := range m.Fields {
		if fc.Name == "" {
			return fmt.Errorf("%w: field %d has no name", ErrInvalidConfig, i)
		}
		if seen[fc.Name] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalidConfig, fc.Name)
		}
		seen[fc.Name] = true
		if fc.Kernel == "" {
			return fmt.Errorf("%w: field %q has no kernel", ErrInvalidConfig, fc.Name)
		}
		if fc.Value != 0 && fc.Kernel != field.TypeConstant {
			return fmt.Errorf("%w: field %q: value only applies to %s", ErrInvalidConfig, fc.Name, field.TypeConstant)
		}
		if fc.Index != 0 && fc.Kernel != field.TypeComponent {
			return fmt.Errorf("%w: field %q: index only applies to %s", ErrInvalidConfig, fc.Name, field.TypeComponent)
		}
	}
	if m.Samples.Grid == nil && len(m.Samples.Points) == 0 {
		return fmt.Errorf("%w: no samples", ErrInvalidConfig)
	}
	if m.Parallel != nil && (m.Parallel.Workers < 0 || m.Parallel.MinChunk < 0) {
		return fmt.Errorf("%w: negative parallel settings", ErrInvalidConfig)
	}
	return nil
}

// ParallelConfig returns the execution settings, parallel.DefaultConfig when
// the description has none.
func (m *Model) ParallelConfig() parallel.Config {
	cfg := parallel.DefaultConfig()
	if m.Parallel == nil {
		return cfg
	}
	cfg.Enabled = m.Parallel.Enabled
	if m.Parallel.Workers > 0 {
		cfg.NumWorkers = m.Parallel.Workers
	}
	if m.Parallel.MinChunk > 0 {
		cfg.MinChunkSize = m.Parallel.MinChunk
	}
	return cfg
}

// Build constructs every field through b and expands the samples.
func (m *Model) Build(b *distribution.Builder) (*Evaluation, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	ev := &Evaluation{
		Names:    make([]string, len(m.Fields)),
		Fields:   make([]field.Field, len(m.Fields)),
		Parallel: m.ParallelConfig(),
	}
	for i, fc := range m.Fields {
		f, err := b.FromSpec(fc.Spec())
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fc.Name, err)
		}
		ev.Names[i] = fc.Name
		ev.Fields[i] = f
	}

	samples, err := m.Samples.build()
	if err != nil {
		return nil, err
	}
	ev.Samples = samples
	return ev, nil
}

func (s Samples) build() ([]field.Sample, error) {
	var (
		out  []field.Sample
		grid batch.GridConfig
	)
	if s.Grid != nil {
		grid = batch.GridConfig{
			Rows:     s.Grid.Rows,
			Columns:  s.Grid.Columns,
			Extent:   s.Grid.Extent,
			Center:   s.Grid.Center,
			EdgeWrap: s.Grid.EdgeWrap,
		}
		g, err := batch.Grid(grid)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		out = append(out, g...)
	}
	for _, p := range s.Points {
		out = append(out, field.Sample(p))
	}
	if s.Source == nil {
		return out, nil
	}

	d, err := grid.Displacements(field.Sample(s.Source), out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return d, nil
}
