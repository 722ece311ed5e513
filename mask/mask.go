// Package mask implements the per-position property mask accepted by area
// queries.
//
// A Mask has a fixed length N, the number of positions in the indexed set,
// and records which positions are eligible. It is backed by a roaring
// bitmap, which stays compact for both dense "has data" flags and sparse
// selections.
package mask

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// LengthError is returned when a mask does not cover the indexed set.
type LengthError struct {
	Expected int
	Actual   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("mask length mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// Mask is a set of eligible positions in [0, Len()).
//
// A nil *Mask stands for "every position eligible" wherever a query accepts
// one; only Contains and CheckLength may be called on it. Every other method
// requires a non-nil Mask.
//
// A Mask must not be modified while a query that received it is running.
type Mask struct {
	n  int
	rb *roaring.Bitmap
}

// New returns a mask of length n with no position set.
func New(n int) *Mask {
	return &Mask{n: n, rb: roaring.New()}
}

// All returns a mask of length n with every position set.
func All(n int) *Mask {
	m := New(n)
	if n > 0 {
		m.rb.AddRange(0, uint64(n))
	}
	return m
}

// FromBools returns a mask with position i set when flags[i] is true.
func FromBools(flags []bool) *Mask {
	m := New(len(flags))
	for i, f := range flags {
		if f {
			m.rb.Add(uint32(i))
		}
	}
	return m
}

// Len returns the mask length.
func (m *Mask) Len() int {
	return m.n
}

// Set marks pos as eligible. Positions outside [0, Len()) are ignored.
func (m *Mask) Set(pos int) {
	if pos < 0 || pos >= m.n {
		return
	}
	m.rb.Add(uint32(pos))
}

// Clear marks pos as not eligible.
func (m *Mask) Clear(pos int) {
	if pos < 0 || pos >= m.n {
		return
	}
	m.rb.Remove(uint32(pos))
}

// Contains reports whether pos is eligible. A nil mask contains every position.
func (m *Mask) Contains(pos int) bool {
	if m == nil {
		return true
	}
	if pos < 0 || pos >= m.n {
		return false
	}
	return m.rb.Contains(uint32(pos))
}

// Count returns the number of eligible positions. m must be non-nil.
func (m *Mask) Count() int {
	return int(m.rb.GetCardinality())
}

// Positions iterates over the eligible positions in ascending order.
// m must be non-nil.
func (m *Mask) Positions() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := m.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Bools returns the mask as a slice of flags. m must be non-nil.
func (m *Mask) Bools() []bool {
	out := make([]bool, m.n)
	for pos := range m.Positions() {
		out[pos] = true
	}
	return out
}

// CheckLength returns a *LengthError unless m is nil or has length n.
func (m *Mask) CheckLength(n int) error {
	if m == nil || m.n == n {
		return nil
	}
	return &LengthError{Expected: n, Actual: m.n}
}
