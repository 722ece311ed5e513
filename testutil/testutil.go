package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/millerindex/miller"
	"github.com/hupe1980/millerindex/symmetry"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Flags returns n flags, each false with probability missingRate.
func (r *RNG) Flags(n int, missingRate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Float64() >= missingRate
	}
	return out
}

// Indices returns n distinct random indices with components in [-radius, radius],
// in generation order.
func (r *RNG) Indices(n, radius int) []miller.Index {
	r.mu.Lock()
	defer r.mu.Unlock()

	side := 2*radius + 1
	if total := side * side * side; n > total {
		n = total
	}

	seen := make(map[miller.Index]struct{}, n)
	out := make([]miller.Index, 0, n)
	for len(out) < n {
		v := miller.New(
			r.rand.Intn(side)-radius,
			r.rand.Intn(side)-radius,
			r.rand.Intn(side)-radius,
		)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Grid returns every index with components in [-r, r], ordered with h
// outermost and l innermost.
func Grid(r int) []miller.Index {
	side := 2*r + 1
	out := make([]miller.Index, 0, side*side*side)
	for h := -r; h <= r; h++ {
		for k := -r; k <= r; k++ {
			for l := -r; l <= r; l++ {
				out = append(out, miller.New(h, k, l))
			}
		}
	}
	return out
}

// GridPosition returns the position of v in Grid(r).
func GridPosition(r int, v miller.Index) int {
	side := 2*r + 1
	return (v.H+r)*side*side + (v.K+r)*side + (v.L + r)
}

// Sphere returns every index with h²+k²+l² <= r², in lexicographic order.
func Sphere(r int) []miller.Index {
	var out []miller.Index
	for h := -r; h <= r; h++ {
		for k := -r; k <= r; k++ {
			for l := -r; l <= r; l++ {
				if h*h+k*k+l*l <= r*r {
					out = append(out, miller.New(h, k, l))
				}
			}
		}
	}
	return out
}

// Unique keeps the first index of every orbit under d, preserving order.
// The result is symmetry-unique.
func Unique(indices []miller.Index, d symmetry.Description) []miller.Index {
	seen := make(map[miller.Index]struct{}, len(indices)*d.MaxOrbitSize())
	var out []miller.Index
	for _, v := range indices {
		if _, ok := seen[v]; ok {
			continue
		}
		for _, w := range d.Orbit(v) {
			seen[w] = struct{}{}
		}
		out = append(out, v)
	}
	return out
}

// PointGroup2 returns the operators of point group 2 (two-fold along k).
func PointGroup2() []symmetry.Operator {
	return []symmetry.Operator{
		symmetry.Identity(),
		symmetry.MustParse("-h,k,-l"),
	}
}

// PointGroup222 returns the operators of point group 222.
func PointGroup222() []symmetry.Operator {
	return []symmetry.Operator{
		symmetry.Identity(),
		symmetry.MustParse("-h,-k,l"),
		symmetry.MustParse("-h,k,-l"),
		symmetry.MustParse("h,-k,-l"),
	}
}

// PointGroup4 returns the operators of point group 4 (four-fold along l).
func PointGroup4() []symmetry.Operator {
	return []symmetry.Operator{
		symmetry.Identity(),
		symmetry.MustParse("-k,h,l"),
		symmetry.MustParse("-h,-k,l"),
		symmetry.MustParse("k,-h,l"),
	}
}

// BruteForceArea returns every position q != seed whose index lies at an
// L1 distance in [minDist, maxDist] from indices[seed] and whose flag is
// set (a nil flags slice sets every flag). Results are in position order.
//
// It matches the identity-symmetry behaviour of an area query with an
// unbounded cap, up to ordering.
func BruteForceArea(indices []miller.Index, seed, minDist, maxDist int, flags []bool) []int {
	base := indices[seed]
	var out []int
	for q, v := range indices {
		if q == seed || (flags != nil && !flags[q]) {
			continue
		}
		if d := base.Manhattan(v); d >= minDist && d <= maxDist {
			out = append(out, q)
		}
	}
	return out
}
