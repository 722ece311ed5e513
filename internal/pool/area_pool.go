// Package pool provides object pools for allocation-free area enumeration.
// Uses sync.Pool for automatic memory reuse and bitsets for efficient visited tracking.
package pool

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
)

const (
	// DefaultMaxPositions is the default initial capacity for bitsets.
	DefaultMaxPositions = 1 << 16

	// DefaultTouchedCapacity is the default capacity of the touched list,
	// sized for a typical per-seed neighbour cap.
	DefaultTouchedCapacity = 1024
)

// AreaContext holds the per-worker scratch state of an area enumeration.
//
// Visited records which positions were already placed in the current
// seed's list. Only the touched bits are cleared between seeds, so the cost
// of Reset is proportional to the list length, not to the dataset size.
type AreaContext struct {
	Visited *bitset.BitSet

	touched      []uint
	maxPositions uint
}

// areaContextPool is the global pool of AreaContext objects.
var areaContextPool = sync.Pool{
	New: func() interface{} {
		return &AreaContext{
			Visited:      bitset.New(DefaultMaxPositions),
			touched:      make([]uint, 0, DefaultTouchedCapacity),
			maxPositions: DefaultMaxPositions,
		}
	},
}

// Get retrieves an AreaContext able to track n positions.
func Get(n int) *AreaContext {
	ac := areaContextPool.Get().(*AreaContext)
	ac.Reset()
	if n > 0 {
		ac.EnsureCapacity(uint(n - 1))
	}
	return ac
}

// Put returns an AreaContext to the pool for reuse.
func Put(ac *AreaContext) {
	if ac == nil {
		return
	}
	if ac.maxPositions > DefaultMaxPositions*64 {
		ac.Visited = bitset.New(DefaultMaxPositions)
		ac.maxPositions = DefaultMaxPositions
	}
	ac.Reset()
	areaContextPool.Put(ac)
}

// Reset clears the visited positions recorded since the last Reset.
func (ac *AreaContext) Reset() {
	for _, pos := range ac.touched {
		ac.Visited.Clear(pos)
	}
	ac.touched = ac.touched[:0]
}

// EnsureCapacity ensures the visited bitset can track up to pos.
func (ac *AreaContext) EnsureCapacity(pos uint) {
	if pos >= ac.maxPositions {
		newSize := max(pos+1, ac.maxPositions*2)
		grown := bitset.New(newSize)
		for _, p := range ac.touched {
			grown.Set(p)
		}
		ac.Visited = grown
		ac.maxPositions = newSize
	}
}

// MarkVisited marks a position as visited.
// Returns true if the position was already visited, false otherwise.
func (ac *AreaContext) MarkVisited(pos int) bool {
	p := uint(pos)
	ac.EnsureCapacity(p)
	if ac.Visited.Test(p) {
		return true
	}
	ac.Visited.Set(p)
	ac.touched = append(ac.touched, p)
	return false
}
