package lookup

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/hupe1980/millerindex/resource"
	"github.com/hupe1980/millerindex/miller"
	"github.com/hupe1980/millerindex/symmetry"
)

// absent marks an empty cell.
const absent int32 = -1

// cellBytes is the size of one dense table cell.
const cellBytes = 4

// Tensor resolves Miller indices, and their symmetry equivalents, to
// positions in the indexed set.
type Tensor struct {
	indices []miller.Index
	sym     symmetry.Description

	lo, hi     miller.Index
	nk, nl     int // extents along k and l
	strideH    int // nk * nl
	cells      int
	hasEntries bool

	layout Layout
	dense  []int32
	sparse map[miller.Index]int32

	occupied int

	rc       *resource.Controller
	reserved int64
}

// New builds a tensor over indices under sym.
//
// indices is referenced, not copied, and must not be modified afterwards.
// It must be symmetry-unique: no two entries may share an orbit member.
// When they do, the entry at the larger position owns the shared cells,
// unless WithStrictUniqueness is set.
func New(indices []miller.Index, sym symmetry.Description, optFns ...Option) (*Tensor, error) {
	opts := options{
		layout: LayoutAuto,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	if err := sym.Validate(); err != nil {
		return nil, err
	}
	if len(indices) > math.MaxInt32 {
		return nil, fmt.Errorf("%w: %d", ErrTooManyIndices, len(indices))
	}

	rc := opts.controller
	if rc == nil {
		rc = resource.NewController(resource.Config{MemoryLimitBytes: resource.DefaultMemoryLimitBytes})
	}

	t := &Tensor{
		indices: indices,
		sym:     sym,
		layout:  opts.layout,
		rc:      rc,
	}

	lo, hi, ok := miller.Bounds(indices)
	if !ok {
		if t.layout == LayoutAuto {
			t.layout = LayoutSparse
		}
		opts.logger.Debug("lookup tensor built", "indices", 0)
		return t, nil
	}

	t.lo, t.hi = lo, hi
	t.hasEntries = true
	nh := hi.H - lo.H + 1
	t.nk = hi.K - lo.K + 1
	t.nl = hi.L - lo.L + 1
	t.strideH = t.nk * t.nl

	cells, fits := volume(nh, t.nk, t.nl)
	t.cells = cells

	if err := t.allocate(cells, fits, opts.logger); err != nil {
		return nil, err
	}

	if err := t.fill(opts.strict); err != nil {
		t.Release()
		return nil, err
	}

	opts.logger.Info("lookup tensor built",
		"indices", len(indices),
		"operators", sym.Order(),
		"anomalous", sym.Anomalous,
		"layout", t.layout.String(),
		"cells", t.cells,
		"occupied", t.occupied,
	)

	return t, nil
}

// allocate chooses the layout and reserves the dense table.
func (t *Tensor) allocate(cells int, fits bool, logger *slog.Logger) error {
	if t.layout == LayoutSparse {
		t.sparse = make(map[miller.Index]int32, len(t.indices))
		return nil
	}

	var err error
	if !fits || cells > math.MaxInt64/cellBytes {
		err = resource.ErrMemoryLimitExceeded
	} else {
		err = t.rc.AcquireMemory(int64(cells) * cellBytes)
	}

	if err != nil {
		if t.layout == LayoutDense || !errors.Is(err, resource.ErrMemoryLimitExceeded) {
			return fmt.Errorf("lookup: dense table for box %s..%s: %w", t.lo, t.hi, err)
		}
		logger.Debug("dense table exceeds memory budget, using sparse layout",
			"lo", t.lo.String(),
			"hi", t.hi.String(),
			"limit_bytes", t.rc.MemoryLimit(),
		)
		t.layout = LayoutSparse
		t.sparse = make(map[miller.Index]int32, len(t.indices))
		return nil
	}

	t.reserved = int64(cells) * cellBytes
	t.layout = LayoutDense
	t.dense = make([]int32, cells)
	for i := range t.dense {
		t.dense[i] = absent
	}
	return nil
}

// fill writes every in-box orbit member of every stored index.
// Positions are written in ascending order, so the last writer wins.
func (t *Tensor) fill(strict bool) error {
	orbit := make([]miller.Index, 0, t.sym.MaxOrbitSize())

	for p, v := range t.indices {
		orbit = t.sym.AppendOrbit(orbit[:0], v)
		for _, w := range orbit {
			if !t.inBox(w) {
				continue
			}

			prev := t.load(w)
			switch {
			case prev == absent:
				t.occupied++
			case int(prev) != p && strict:
				return &DuplicateOrbitError{Index: w, Existing: int(prev), Position: p}
			}

			t.store(w, int32(p))
		}
	}

	return nil
}

// Find returns the position of the stored index equivalent to v.
//
// The position may belong to a different, symmetry-equivalent index.
// Find never allocates.
func (t *Tensor) Find(v miller.Index) (int, bool) {
	if !t.inBox(v) {
		return -1, false
	}
	p := t.load(v)
	if p == absent {
		return -1, false
	}
	return int(p), true
}

// Contains reports whether v, or an equivalent of v, is stored.
func (t *Tensor) Contains(v miller.Index) bool {
	_, ok := t.Find(v)
	return ok
}

// FindAll resolves every index in vs. Absent entries are reported as -1.
func (t *Tensor) FindAll(vs []miller.Index) []int {
	out := make([]int, len(vs))
	for i, v := range vs {
		out[i], _ = t.Find(v)
	}
	return out
}

// At returns the stored index at position pos.
func (t *Tensor) At(pos int) miller.Index {
	return t.indices[pos]
}

// Indices returns the indexed set. The caller must not modify it.
func (t *Tensor) Indices() []miller.Index {
	return t.indices
}

// Len returns the number of stored indices.
func (t *Tensor) Len() int {
	return len(t.indices)
}

// Symmetry returns the description the tensor was built with.
func (t *Tensor) Symmetry() symmetry.Description {
	return t.sym
}

// Bounds returns the inclusive bounding box of the stored indices.
// ok is false for an empty tensor.
func (t *Tensor) Bounds() (lo, hi miller.Index, ok bool) {
	return t.lo, t.hi, t.hasEntries
}

// Diameter returns the L1 extent of the bounding box: no two indices in the
// box are further apart.
func (t *Tensor) Diameter() int {
	if !t.hasEntries {
		return 0
	}
	return t.hi.Sub(t.lo).Norm1()
}

// Layout returns the storage layout chosen at build time.
func (t *Tensor) Layout() Layout {
	return t.layout
}

// Stats describes a tensor.
type Stats struct {
	Indices   int
	Operators int
	Anomalous bool
	Layout    Layout
	Lo, Hi    miller.Index
	Cells     int   // cells in the bounding box
	Occupied  int   // cells resolving to a position
	Bytes     int64 // reserved dense table bytes
}

// Stats returns statistics about the tensor.
func (t *Tensor) Stats() Stats {
	return Stats{
		Indices:   len(t.indices),
		Operators: t.sym.Order(),
		Anomalous: t.sym.Anomalous,
		Layout:    t.layout,
		Lo:        t.lo,
		Hi:        t.hi,
		Cells:     t.cells,
		Occupied:  t.occupied,
		Bytes:     t.reserved,
	}
}

// Release returns the dense table reservation to the resource controller
// and drops the cells. Every later Find misses.
//
// Release must not run concurrently with queries.
func (t *Tensor) Release() {
	if t == nil {
		return
	}
	t.rc.ReleaseMemory(t.reserved)
	t.reserved = 0
	t.dense = nil
	t.sparse = nil
	t.hasEntries = false
}

func (t *Tensor) inBox(v miller.Index) bool {
	return t.hasEntries &&
		v.H >= t.lo.H && v.H <= t.hi.H &&
		v.K >= t.lo.K && v.K <= t.hi.K &&
		v.L >= t.lo.L && v.L <= t.hi.L
}

// offset returns the dense cell of an in-box index.
func (t *Tensor) offset(v miller.Index) int {
	return (v.H-t.lo.H)*t.strideH + (v.K-t.lo.K)*t.nl + (v.L - t.lo.L)
}

func (t *Tensor) load(v miller.Index) int32 {
	if t.dense != nil {
		return t.dense[t.offset(v)]
	}
	if p, ok := t.sparse[v]; ok {
		return p
	}
	return absent
}

func (t *Tensor) store(v miller.Index, p int32) {
	if t.dense != nil {
		t.dense[t.offset(v)] = p
		return
	}
	t.sparse[v] = p
}

// volume returns nh*nk*nl and whether it fits in an int.
func volume(nh, nk, nl int) (int, bool) {
	if nh <= 0 || nk <= 0 || nl <= 0 {
		return 0, false
	}
	if nk > math.MaxInt/nl {
		return 0, false
	}
	plane := nk * nl
	if nh > math.MaxInt/plane {
		return 0, false
	}
	return nh * plane, true
}
