// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package batch evaluates fields over ordered collections of samples.
//
// Value i of a result always belongs to sample i, whether the work was split
// across goroutines or not:
//
//	samples, _ := batch.Grid(batch.GridConfig{Rows: 64, Columns: 64, Extent: [2]float64{2, 2}})
//	values, err := batch.Evaluate(field, samples)
package batch

import (
	"github.com/born-ml/spatial/internal/batch"
	"github.com/born-ml/spatial/internal/field"
	"github.com/born-ml/spatial/internal/parallel"
)

// Driver applies fields to sample sets.
type Driver = batch.Driver

// Option configures a Driver.
type Option = batch.Option

// Config controls parallel execution.
type Config = parallel.Config

// GridConfig describes a regular 2D grid of positions.
type GridConfig = batch.GridConfig

// Summary describes a batch of values.
type Summary = batch.Summary

// DimensionError reports a sample with fewer components than the field reads.
type DimensionError = batch.DimensionError

// Driver errors.
var (
	ErrNilField          = batch.ErrNilField
	ErrDimensionMismatch = batch.ErrDimensionMismatch
	ErrInvalidGrid       = batch.ErrInvalidGrid
)

// DefaultConfig returns parallel settings based on CPU count.
func DefaultConfig() Config { return parallel.DefaultConfig() }

// Sequential returns settings that never spawn goroutines.
func Sequential() Config { return parallel.Sequential() }

// WithConfig sets the parallel execution config.
func WithConfig(cfg Config) Option { return batch.WithConfig(cfg) }

// NewDriver creates a driver.
func NewDriver(opts ...Option) *Driver { return batch.NewDriver(opts...) }

// Evaluate evaluates f over samples with a default driver.
func Evaluate(f field.Field, samples []field.Sample) ([]float64, error) {
	return batch.Evaluate(f, samples)
}

// Grid returns grid cell-center positions, column by column from the top row.
func Grid(cfg GridConfig) ([]field.Sample, error) { return batch.Grid(cfg) }

// Displacements returns target - source for every target.
func Displacements(source field.Sample, targets []field.Sample) ([]field.Sample, error) {
	return batch.Displacements(source, targets)
}

// Summarize computes count, min, max, mean and sum of values.
func Summarize(values []float64) Summary { return batch.Summarize(values) }
