// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package distributions builds spatial distribution kernels over scalar
// fields.
//
// # Overview
//
// A Field maps a coordinate sample to a number. Input fields read the sample
// directly; distributions apply a kernel to one or two input fields:
//   - Exponential: exp(-x/beta)
//   - Gaussian: exp(-(x-mean)^2 / (2 std^2))
//   - Gaussian2D: rotated anisotropic bivariate gaussian
//   - Gamma: gamma probability density (needs special functions)
//   - Gabor: rectified Gabor profile, as used for orientation maps
//
// Construction validates parameters and never evaluates. Evaluation is a
// pure function of the sample and safe for concurrent use.
//
// # Basic Usage
//
//	import "github.com/born-ml/spatial/distributions"
//
//	func main() {
//	    // Connection probability falling off with distance.
//	    p, err := distributions.Gaussian(
//	        distributions.Distance(),
//	        distributions.GaussianConfig{Mean: 0, Std: 0.5},
//	    )
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(p.Value(distributions.S1(0.25)))
//	}
//
// # Building by Tag
//
// Model descriptions name kernels by tag:
//
//	g, err := distributions.Create("gabor",
//	    map[string]float64{"theta": 45, "gamma": 2, "std": 1, "lam": 2},
//	    distributions.X(), distributions.Y(),
//	)
//
// Unknown tags fail with ErrUnknownKernel, out-of-domain parameters with
// ErrInvalidParameter, and kernels the build cannot evaluate (gamma without
// special functions) with ErrUnsupportedKernel.
//
// # Descriptions
//
// Every field has a Spec. FromSpec rebuilds the same field from it, which is
// how records in a catalog or requests to a remote evaluator are turned back
// into fields.
package distributions
