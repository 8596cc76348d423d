// Package parallel fans index ranges out over worker goroutines.
package parallel

import (
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 256, // Kernel evaluations are cheap; keep chunks coarse.
	}
}

// Sequential returns a config that never spawns goroutines.
func Sequential() Config {
	return Config{Enabled: false, NumWorkers: 1, MinChunkSize: 1}
}

// normalize clamps nonsensical settings instead of failing on them.
func (cfg Config) normalize() Config {
	if cfg.NumWorkers < 1 {
		cfg.NumWorkers = 1
	}
	if cfg.MinChunkSize < 1 {
		cfg.MinChunkSize = 1
	}
	return cfg
}

// Chunks splits [0, n) into contiguous [start, end) ranges, one per
// goroutine that For would start. A single range means sequential execution.
func Chunks(n int, cfg Config) [][2]int {
	if n <= 0 {
		return nil
	}
	cfg = cfg.normalize()
	if !cfg.Enabled || cfg.NumWorkers == 1 || n < cfg.MinChunkSize {
		return [][2]int{{0, n}}
	}

	chunkSize := max((n+cfg.NumWorkers-1)/cfg.NumWorkers, cfg.MinChunkSize)
	out := make([][2]int, 0, (n+chunkSize-1)/chunkSize)
	for start := 0; start < n; start += chunkSize {
		out = append(out, [2]int{start, min(start+chunkSize, n)})
	}
	return out
}

// For executes f(i) for i in [0, n) with optional parallelism and returns
// once every call has finished. Each index is visited exactly once.
// Falls back to sequential execution if parallelism is disabled or n is too small.
func For(n int, f func(i int), cfg Config) {
	chunks := Chunks(n, cfg)
	if len(chunks) <= 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var wg sync.WaitGroup
	for _, c := range chunks {
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for i := s; i < e; i++ {
				f(i)
			}
		}(c[0], c[1])
	}
	wg.Wait()
}

// Map evaluates f over [0, n) and returns the results in index order.
func Map(n int, f func(i int) float64, cfg Config) []float64 {
	out := make([]float64, max(n, 0))
	For(n, func(i int) {
		out[i] = f(i)
	}, cfg)
	return out
}
