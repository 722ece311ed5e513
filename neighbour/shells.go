package neighbour

import (
	"slices"
	"sync"

	"github.com/hupe1980/millerindex/miller"
)

// axisDirections is the canonical unit-step order.
var axisDirections = [6]miller.Index{
	{H: -1}, {K: -1}, {L: -1}, {L: 1}, {K: 1}, {H: 1},
}

// AxisOffsets returns the six axis offsets at step, in canonical order.
func AxisOffsets(step int) [6]miller.Index {
	var out [6]miller.Index
	for i, d := range axisDirections {
		out[i] = miller.New(d.H*step, d.K*step, d.L*step)
	}
	return out
}

// Shells holds lattice offsets grouped by L1 norm in breadth-first order.
//
// Shells are generated on first use and kept, so a walk that stops at a
// small distance never pays for the distant ones. Shells is safe for
// concurrent use, and the slices it returns are never modified.
type Shells struct {
	mu      sync.RWMutex
	offsets []miller.Index
	starts  []int // offsets[starts[d]:starts[d+1]] is shell d
}

// NewShells returns shells with 0 through maxDistance already generated.
// Further shells are generated on demand.
func NewShells(maxDistance int) *Shells {
	s := &Shells{
		offsets: []miller.Index{miller.Origin},
		starts:  []int{0, 1},
	}
	s.grow(maxDistance)
	return s
}

// Generated returns the largest shell generated so far.
func (s *Shells) Generated() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.starts) - 2
}

// Shell returns the offsets of norm d, generating missing shells up to d.
// Negative d yields nil.
func (s *Shells) Shell(d int) []miller.Index {
	if d < 0 {
		return nil
	}

	s.mu.RLock()
	if d+1 < len(s.starts) {
		shell := s.shell(d)
		s.mu.RUnlock()
		return shell
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.grow(d)
	return s.shell(d)
}

// shell slices shell d with its capacity clipped, so appends by the caller
// never reach the shared backing array.
func (s *Shells) shell(d int) []miller.Index {
	lo, hi := s.starts[d], s.starts[d+1]
	return s.offsets[lo:hi:hi]
}

// grow generates shells up to maxDistance. The caller holds the write lock
// or owns s exclusively.
func (s *Shells) grow(maxDistance int) {
	for d := len(s.starts) - 2; d < maxDistance; d++ {
		prev := s.offsets[s.starts[d]:s.starts[d+1]]
		seen := make(map[miller.Index]struct{}, ShellSize(d+1))
		s.offsets = slices.Grow(s.offsets, ShellSize(d+1))

		for _, o := range prev {
			for _, dir := range axisDirections {
				n := o.Add(dir)
				if n.Norm1() != d+1 {
					continue
				}
				if _, ok := seen[n]; ok {
					continue
				}
				seen[n] = struct{}{}
				s.offsets = append(s.offsets, n)
			}
		}

		s.starts = append(s.starts, len(s.offsets))
	}
}

// ShellSize returns the number of integer 3-vectors with L1 norm d.
func ShellSize(d int) int {
	switch {
	case d < 0:
		return 0
	case d == 0:
		return 1
	default:
		return 4*d*d + 2
	}
}
