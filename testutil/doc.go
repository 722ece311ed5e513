// Package testutil provides testing utilities for millerindex.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic Miller index fixtures, point-group operator
// lists, random masks, and brute-force reference answers.
//
// # Fixtures
//
//	indices := testutil.Grid(3)              // 7x7x7 cube, h outermost
//	pos := testutil.GridPosition(3, miller.Origin) // 171
//	sphere := testutil.Sphere(10)            // |h|^2 <= 100, lexicographic
//	unique := testutil.Unique(sphere, desc)  // one representative per orbit
//
// # Ground Truth
//
//	want := testutil.BruteForceArea(indices, seed, 1, 2, nil)
package testutil
