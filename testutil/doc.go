// Package testutil provides testing utilities for fsq.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe random number generator for
// reproducible vector generation:
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float32, 4)
//	rng.FillUniform(vec)      // uniform [0, 1)
//	rng.FillGaussian(vec)     // standard normal
package testutil
