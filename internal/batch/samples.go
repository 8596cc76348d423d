package batch

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/spatial/internal/field"
)

// ErrInvalidGrid is returned for grids without rows, columns or extent.
var ErrInvalidGrid = errors.New("batch: invalid grid")

// GridConfig describes a regular 2D grid of positions.
type GridConfig struct {
	Rows    int
	Columns int
	// Extent is the (width, height) covered by the grid. Zero means one
	// unit of spacing per row and column.
	Extent [2]float64
	Center [2]float64
	// EdgeWrap joins opposite edges, making the grid a torus. Displacements
	// then take the shortest way around.
	EdgeWrap bool
}

// Size returns the (width, height) the grid covers.
func (cfg GridConfig) Size() [2]float64 {
	if cfg.Extent == [2]float64{} {
		return [2]float64{float64(cfg.Columns), float64(cfg.Rows)}
	}
	return cfg.Extent
}

// Displacements returns target - source for every target, wrapped around
// the grid edges when EdgeWrap is set.
func (cfg GridConfig) Displacements(source field.Sample, targets []field.Sample) ([]field.Sample, error) {
	if !cfg.EdgeWrap {
		return Displacements(source, targets)
	}
	return WrappedDisplacements(source, targets, cfg.Size())
}

// Grid returns the cell-center positions of a grid. Positions are ordered
// column by column, each column from the top row down, so sample
// c*Rows + r is row r of column c.
func Grid(cfg GridConfig) ([]field.Sample, error) {
	if cfg.Rows < 1 || cfg.Columns < 1 {
		return nil, fmt.Errorf("%w: %d rows x %d columns", ErrInvalidGrid, cfg.Rows, cfg.Columns)
	}
	ext := cfg.Size()
	if !(ext[0] > 0 && ext[1] > 0) {
		return nil, fmt.Errorf("%w: extent %v", ErrInvalidGrid, ext)
	}

	dx := ext[0] / float64(cfg.Columns)
	dy := ext[1] / float64(cfg.Rows)
	left := cfg.Center[0] - ext[0]/2
	top := cfg.Center[1] + ext[1]/2

	out := make([]field.Sample, 0, cfg.Rows*cfg.Columns)
	for c := 0; c < cfg.Columns; c++ {
		for r := 0; r < cfg.Rows; r++ {
			out = append(out, field.S2(left+(float64(c)+0.5)*dx, top-(float64(r)+0.5)*dy))
		}
	}
	return out, nil
}

// Displacements returns target - source for every target, in target order.
func Displacements(source field.Sample, targets []field.Sample) ([]field.Sample, error) {
	out := make([]field.Sample, len(targets))
	for i, t := range targets {
		if len(t) != len(source) {
			return nil, &DimensionError{Index: i, Got: len(t), Want: len(source)}
		}
		d := make(field.Sample, len(t))
		floats.SubTo(d, t, source)
		out[i] = d
	}
	return out, nil
}

// WrappedDisplacements is Displacements on a periodic 2D domain of the given
// (width, height): each component is folded into [-size/2, size/2].
func WrappedDisplacements(source field.Sample, targets []field.Sample, size [2]float64) ([]field.Sample, error) {
	if !(size[0] > 0 && size[1] > 0) {
		return nil, fmt.Errorf("%w: extent %v", ErrInvalidGrid, size)
	}
	if len(source) != 2 {
		return nil, &DimensionError{Index: -1, Got: len(source), Want: 2}
	}
	out, err := Displacements(source, targets)
	if err != nil {
		return nil, err
	}
	for _, d := range out {
		d[0] = math.Remainder(d[0], size[0])
		d[1] = math.Remainder(d[1], size[1])
	}
	return out, nil
}

// Summary describes a batch of values.
type Summary struct {
	Count int
	Min   float64
	Max   float64
	Mean  float64
	Sum   float64
}

// Summarize computes a Summary. The zero Summary is returned for no values.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	return Summary{
		Count: len(values),
		Min:   floats.Min(values),
		Max:   floats.Max(values),
		Mean:  stat.Mean(values, nil),
		Sum:   floats.Sum(values),
	}
}
