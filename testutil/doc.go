// Package testutil provides seeded generators for tests and benchmarks.
//
// This package is intended for use in tests and benchmarks only.
//
//	rng := testutil.NewRNG(seed)
//	coords := rng.UniformPoints(1000, 10) // interleaved x, y, z in [0, 10)
//	dups := rng.Jitter(coords, 1e-9)      // same points, perturbed
package testutil
