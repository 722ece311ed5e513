package millerindex

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hupe1980/millerindex/lookup"
	"github.com/hupe1980/millerindex/mask"
	"github.com/hupe1980/millerindex/miller"
	"github.com/hupe1980/millerindex/neighbour"
	"github.com/hupe1980/millerindex/resource"
	"github.com/hupe1980/millerindex/symmetry"
)

// AreaParams bounds an area query. See neighbour.AreaParams.
type AreaParams = neighbour.AreaParams

// Index is a symmetry-aware lookup over a set of Miller indices together
// with its neighbour enumerator.
//
// Queries are safe for concurrent use. Close waits for running queries.
type Index struct {
	mu     sync.RWMutex
	closed bool

	tensor *lookup.Tensor
	enum   *neighbour.Enumerator
	rc     *resource.Controller

	logger  *Logger
	metrics MetricsCollector
}

// New builds an Index over indices under sym.
//
// indices is referenced, not copied, and must not be modified afterwards.
// Position p of every query result refers to indices[p].
func New(indices []miller.Index, sym symmetry.Description, optFns ...Option) (*Index, error) {
	opts := applyOptions(optFns)
	ctx := context.Background()

	lookupOpts := []lookup.Option{
		lookup.WithLayout(opts.layout),
		lookup.WithResourceController(opts.controller),
		lookup.WithLogger(opts.logger.Logger),
	}
	if opts.strict {
		lookupOpts = append(lookupOpts, lookup.WithStrictUniqueness())
	}

	start := time.Now()
	tensor, err := lookup.New(indices, sym, lookupOpts...)
	elapsed := time.Since(start)

	opts.metricsCollector.RecordBuild(len(indices), elapsed, err)
	opts.logger.LogBuild(ctx, len(indices), elapsed, err)
	if err != nil {
		return nil, err
	}

	return &Index{
		tensor: tensor,
		enum: neighbour.New(tensor,
			neighbour.WithWorkers(opts.workers),
			neighbour.WithLogger(opts.logger.Logger),
		),
		rc:      opts.controller,
		logger:  opts.logger,
		metrics: opts.metricsCollector,
	}, nil
}

// Find returns the position of the stored index equivalent to v.
// A closed Index finds nothing.
func (x *Index) Find(v miller.Index) (int, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	pos, ok := x.tensor.Find(v)
	x.metrics.RecordFind(ok)
	return pos, ok
}

// FindAll resolves every index in vs. Absent entries are reported as -1.
func (x *Index) FindAll(vs []miller.Index) ([]int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.closed {
		return nil, ErrClosed
	}
	return x.tensor.FindAll(vs), nil
}

// Neighbourhood returns the axis neighbours of position p at step.
func (x *Index) Neighbourhood(p, step int) ([]int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.closed {
		return nil, ErrClosed
	}
	out, err := x.enum.Neighbourhood(p, step)
	x.logSeed("neighbourhood", p, out, err)
	return out, err
}

// NeighbourhoodAll returns the axis neighbours of every position.
// It holds one query slot of the resource controller while running.
func (x *Index) NeighbourhoodAll(ctx context.Context, step int) ([][]int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	out, err := x.batch(ctx, func() ([][]int, error) {
		return x.enum.NeighbourhoodAll(ctx, step)
	})

	x.metrics.RecordNeighbourhood(len(out), time.Since(start), err)
	x.logger.LogNeighbourhood(ctx, len(out), step, err)
	return out, err
}

// Area returns the area list of position p. m selects eligible positions;
// nil means every position.
func (x *Index) Area(p int, params AreaParams, m *mask.Mask) ([]int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.closed {
		return nil, ErrClosed
	}
	out, err := x.enum.Area(p, params, m)
	x.logSeed("area", p, out, err)
	return out, err
}

// AreaAll returns the area list of every position.
// It holds one query slot of the resource controller while running.
func (x *Index) AreaAll(ctx context.Context, params AreaParams, m *mask.Mask) ([][]int, error) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if x.closed {
		return nil, ErrClosed
	}

	start := time.Now()
	out, err := x.batch(ctx, func() ([][]int, error) {
		return x.enum.AreaAll(ctx, params, m)
	})

	entries := 0
	for _, list := range out {
		entries += len(list)
	}
	x.metrics.RecordArea(len(out), entries, time.Since(start), err)
	x.logger.LogArea(ctx, len(out), entries, err)
	return out, err
}

func (x *Index) batch(ctx context.Context, fn func() ([][]int, error)) ([][]int, error) {
	if !x.rc.TryAcquireQuery() {
		x.logger.DebugContext(ctx, "waiting for query slot")
		if err := x.rc.AcquireQuery(ctx); err != nil {
			return nil, err
		}
	}
	defer x.rc.ReleaseQuery()
	return fn()
}

// logSeed logs a single-seed query at debug level.
func (x *Index) logSeed(op string, p int, out []int, err error) {
	if !x.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	l := x.logger.WithPosition(p)
	if err != nil {
		l.Debug(op+" query rejected", "error", err)
		return
	}
	l.WithCount(len(out)).Debug(op + " query completed")
}

// At returns the stored index at position p.
func (x *Index) At(p int) miller.Index {
	return x.tensor.At(p)
}

// Len returns the number of stored indices.
func (x *Index) Len() int {
	return x.tensor.Len()
}

// Tensor returns the underlying lookup tensor.
func (x *Index) Tensor() *lookup.Tensor {
	return x.tensor
}

// Stats returns statistics about the lookup table.
func (x *Index) Stats() lookup.Stats {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return x.tensor.Stats()
}

// Close releases the memory reserved for the lookup table.
// Later queries return ErrClosed; Find reports not found.
func (x *Index) Close() error {
	if x == nil {
		return nil
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if x.closed {
		return ErrClosed
	}
	x.closed = true
	x.tensor.Release()
	return nil
}
