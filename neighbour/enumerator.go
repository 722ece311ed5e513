package neighbour

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/millerindex/internal/pool"
	"github.com/hupe1980/millerindex/lookup"
	"github.com/hupe1980/millerindex/mask"
	"github.com/hupe1980/millerindex/miller"
)

const (
	// minChunk is the smallest number of seeds handed to one task.
	minChunk = 64

	// cancelCheckInterval is how many seeds a task processes between
	// context checks.
	cancelCheckInterval = 256

	// areaListCapacity bounds the initial allocation of one area list.
	areaListCapacity = 32
)

// AreaParams bounds an area query.
type AreaParams struct {
	// MinDistance is the smallest L1 distance of a neighbour (>= 0).
	MinDistance int
	// MaxDistance is the largest L1 distance of a neighbour (>= MinDistance).
	MaxDistance int
	// MaxNeighbours caps the list length, seed included (> 0).
	MaxNeighbours int
}

// Validate reports the first violated precondition.
func (p AreaParams) Validate() error {
	if p.MinDistance < 0 {
		return &ParameterError{Name: "min_distance", Value: p.MinDistance, Reason: "must not be negative"}
	}
	if p.MinDistance > p.MaxDistance {
		return &ParameterError{Name: "max_distance", Value: p.MaxDistance, Reason: "must not be less than min_distance"}
	}
	if p.MaxNeighbours <= 0 {
		return &ParameterError{Name: "max_neighbours", Value: p.MaxNeighbours, Reason: "must be positive"}
	}
	return nil
}

type options struct {
	workers int
	logger  *slog.Logger
}

// Option configures an Enumerator.
type Option func(*options)

// WithWorkers sets the number of goroutines used by the whole-dataset
// queries. Values <= 0 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger used for query summaries.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Enumerator answers neighbour queries against a lookup tensor.
// It is read-only and safe for concurrent use.
type Enumerator struct {
	t       *lookup.Tensor
	shells  *Shells
	workers int
	logger  *slog.Logger
}

// New returns an Enumerator over t.
func New(t *lookup.Tensor, optFns ...Option) *Enumerator {
	opts := options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.workers <= 0 {
		opts.workers = runtime.GOMAXPROCS(0)
	}

	return &Enumerator{
		t:       t,
		shells:  NewShells(1),
		workers: opts.workers,
		logger:  opts.logger,
	}
}

// Tensor returns the underlying tensor.
func (e *Enumerator) Tensor() *lookup.Tensor {
	return e.t
}

// Neighbourhood returns the positions of the axis neighbours of position p
// at the given step, in canonical offset order. Offsets without a stored
// equivalent are skipped.
func (e *Enumerator) Neighbourhood(p, step int) ([]int, error) {
	if err := validateStep(step); err != nil {
		return nil, err
	}
	if err := e.checkPosition(p); err != nil {
		return nil, err
	}

	offsets := AxisOffsets(step)
	return e.neighbourhood(p, &offsets), nil
}

// NeighbourhoodAll runs Neighbourhood for every position. The result is
// indexed by seed position.
func (e *Enumerator) NeighbourhoodAll(ctx context.Context, step int) ([][]int, error) {
	if err := validateStep(step); err != nil {
		return nil, err
	}

	offsets := AxisOffsets(step)
	out := make([][]int, e.t.Len())

	err := e.forEachChunk(ctx, len(out), func(ctx context.Context, lo, hi int) error {
		for p := lo; p < hi; p++ {
			if (p-lo)%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			out[p] = e.neighbourhood(p, &offsets)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("neighbourhood enumerated", "seeds", len(out), "step", step)
	return out, nil
}

func (e *Enumerator) neighbourhood(p int, offsets *[6]miller.Index) []int {
	base := e.t.At(p)
	out := make([]int, 0, len(offsets))
	for _, off := range offsets {
		if q, ok := e.t.Find(base.Add(off)); ok {
			out = append(out, q)
		}
	}
	return out
}

// Area returns the area list of position p: p itself, then every eligible
// position found at an L1 offset in [MinDistance, MaxDistance], shell by
// shell, truncated to MaxNeighbours entries.
//
// m selects eligible positions; nil means every position. A seed that is not
// eligible has no area and yields a nil list.
func (e *Enumerator) Area(p int, params AreaParams, m *mask.Mask) ([]int, error) {
	if err := e.checkArea(params, m); err != nil {
		return nil, err
	}
	if err := e.checkPosition(p); err != nil {
		return nil, err
	}

	ac := pool.Get(e.t.Len())
	defer pool.Put(ac)

	return e.area(p, params, e.effectiveMax(params), m, ac), nil
}

// AreaAll runs Area for every position. The result is indexed by seed
// position; seeds excluded by m have nil lists.
func (e *Enumerator) AreaAll(ctx context.Context, params AreaParams, m *mask.Mask) ([][]int, error) {
	if err := e.checkArea(params, m); err != nil {
		return nil, err
	}

	maxDist := e.effectiveMax(params)
	out := make([][]int, e.t.Len())

	err := e.forEachChunk(ctx, len(out), func(ctx context.Context, lo, hi int) error {
		ac := pool.Get(len(out))
		defer pool.Put(ac)

		for p := lo; p < hi; p++ {
			if (p-lo)%cancelCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			out[p] = e.area(p, params, maxDist, m, ac)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.logger.Debug("area enumerated",
		"seeds", len(out),
		"min_distance", params.MinDistance,
		"max_distance", params.MaxDistance,
		"max_neighbours", params.MaxNeighbours,
	)
	return out, nil
}

// area builds one seed's list. Shells are fetched one at a time and the
// walk stops as soon as the list is full. ac is reset before returning.
func (e *Enumerator) area(p int, params AreaParams, maxDist int, m *mask.Mask, ac *pool.AreaContext) []int {
	if !m.Contains(p) {
		return nil
	}
	defer ac.Reset()

	out := make([]int, 0, min(params.MaxNeighbours, areaListCapacity))
	out = append(out, p)
	ac.MarkVisited(p)

	base := e.t.At(p)
	for d := max(params.MinDistance, 1); d <= maxDist && len(out) < params.MaxNeighbours; d++ {
		for _, off := range e.shells.Shell(d) {
			q, ok := e.t.Find(base.Add(off))
			if !ok || !m.Contains(q) || ac.MarkVisited(q) {
				continue
			}
			out = append(out, q)
			if len(out) >= params.MaxNeighbours {
				break
			}
		}
	}

	return out
}

// effectiveMax clamps MaxDistance to the tensor diameter: an offset longer
// than the diameter always leaves the bounding box.
func (e *Enumerator) effectiveMax(params AreaParams) int {
	return min(params.MaxDistance, e.t.Diameter())
}

func (e *Enumerator) checkArea(params AreaParams, m *mask.Mask) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return m.CheckLength(e.t.Len())
}

func (e *Enumerator) checkPosition(p int) error {
	if p < 0 || p >= e.t.Len() {
		return &ParameterError{Name: "position", Value: p, Reason: "out of range"}
	}
	return nil
}

// forEachChunk splits [0,n) into contiguous chunks and runs fn on them with
// at most e.workers goroutines.
func (e *Enumerator) forEachChunk(ctx context.Context, n int, fn func(ctx context.Context, lo, hi int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	chunk := max(minChunk, (n+e.workers*4-1)/(e.workers*4))
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			return fn(gctx, lo, hi)
		})
	}

	return g.Wait()
}

func validateStep(step int) error {
	if step <= 0 {
		return &ParameterError{Name: "step", Value: step, Reason: "must be positive"}
	}
	return nil
}
