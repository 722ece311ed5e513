package millerindex_test

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/hupe1980/millerindex"
	"github.com/hupe1980/millerindex/lookup"
	"github.com/hupe1980/millerindex/mask"
	"github.com/hupe1980/millerindex/miller"
	"github.com/hupe1980/millerindex/resource"
	"github.com/hupe1980/millerindex/symmetry"
	"github.com/hupe1980/millerindex/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	idx, err := millerindex.New(testutil.Grid(3), symmetry.P1(), millerindex.WithWorkers(2))
	require.NoError(t, err)
	defer idx.Close()

	assert.Equal(t, 343, idx.Len())
	assert.NotNil(t, idx.Tensor())

	pos, ok := idx.Find(miller.Origin)
	require.True(t, ok)
	assert.Equal(t, 171, pos)
	assert.Equal(t, miller.Origin, idx.At(pos))

	all, err := idx.FindAll([]miller.Index{miller.Origin, miller.New(0, 0, 4)})
	require.NoError(t, err)
	assert.Equal(t, []int{171, -1}, all)

	nb, err := idx.Neighbourhood(171, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{122, 164, 170, 172, 178, 220}, nb)

	params := millerindex.AreaParams{MinDistance: 1, MaxDistance: 2, MaxNeighbours: 1000}
	area, err := idx.Area(171, params, nil)
	require.NoError(t, err)
	assert.Len(t, area, 25)

	areas, err := idx.AreaAll(context.Background(), params, nil)
	require.NoError(t, err)
	require.Len(t, areas, 343)
	assert.Equal(t, area, areas[171])

	nbs, err := idx.NeighbourhoodAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, nb, nbs[171])

	stats := idx.Stats()
	assert.Equal(t, 343, stats.Indices)
	assert.Equal(t, lookup.LayoutDense, stats.Layout)
}

func TestErrors(t *testing.T) {
	t.Run("EmptyDescription", func(t *testing.T) {
		_, err := millerindex.New(testutil.Grid(1), symmetry.Description{})
		assert.ErrorIs(t, err, millerindex.ErrEmptyDescription)
	})

	t.Run("MissingIdentity", func(t *testing.T) {
		_, err := millerindex.New(testutil.Grid(1), symmetry.Description{
			Operators: []symmetry.Operator{symmetry.MustParse("-h,-k,l")},
		})
		assert.ErrorIs(t, err, millerindex.ErrMissingIdentity)
	})

	t.Run("SingularOperator", func(t *testing.T) {
		_, err := millerindex.New(testutil.Grid(1), symmetry.Description{
			Operators: []symmetry.Operator{symmetry.Identity(), symmetry.MustParse("h,0,l")},
		})
		assert.ErrorIs(t, err, millerindex.ErrSingularOperator)
	})

	t.Run("DuplicateOrbit", func(t *testing.T) {
		sym := symmetry.Description{Operators: testutil.PointGroup2()}
		_, err := millerindex.New(testutil.Grid(1), sym, millerindex.WithStrictUniqueness())
		var dup *millerindex.DuplicateOrbitError
		assert.ErrorAs(t, err, &dup)
	})

	t.Run("MemoryLimit", func(t *testing.T) {
		_, err := millerindex.New(testutil.Grid(3), symmetry.P1(),
			millerindex.WithLayout(lookup.LayoutDense),
			millerindex.WithMemoryLimit(64),
		)
		assert.ErrorIs(t, err, millerindex.ErrMemoryLimitExceeded)

		idx, err := millerindex.New(testutil.Grid(3), symmetry.P1(), millerindex.WithMemoryLimit(64))
		require.NoError(t, err)
		assert.Equal(t, lookup.LayoutSparse, idx.Stats().Layout)
	})

	t.Run("Parameters", func(t *testing.T) {
		idx, err := millerindex.New(testutil.Grid(1), symmetry.P1())
		require.NoError(t, err)

		_, err = idx.Neighbourhood(13, 0)
		assert.ErrorIs(t, err, millerindex.ErrInvalidParameter)

		_, err = idx.AreaAll(context.Background(), millerindex.AreaParams{MinDistance: 2, MaxDistance: 1, MaxNeighbours: 1}, nil)
		var pe *millerindex.ParameterError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, "max_distance", pe.Name)

		_, err = idx.Area(13, millerindex.AreaParams{MinDistance: 1, MaxDistance: 1, MaxNeighbours: 1}, mask.All(3))
		var le *millerindex.MaskLengthError
		assert.ErrorAs(t, err, &le)
	})
}

func TestClose(t *testing.T) {
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 1 << 20})
	idx, err := millerindex.New(testutil.Grid(2), symmetry.P1(), millerindex.WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, int64(500), rc.MemoryUsage())

	require.NoError(t, idx.Close())
	assert.Zero(t, rc.MemoryUsage())
	assert.ErrorIs(t, idx.Close(), millerindex.ErrClosed)

	_, ok := idx.Find(miller.Origin)
	assert.False(t, ok)

	_, err = idx.FindAll([]miller.Index{miller.Origin})
	assert.ErrorIs(t, err, millerindex.ErrClosed)
	_, err = idx.Neighbourhood(0, 1)
	assert.ErrorIs(t, err, millerindex.ErrClosed)
	_, err = idx.NeighbourhoodAll(context.Background(), 1)
	assert.ErrorIs(t, err, millerindex.ErrClosed)
	_, err = idx.Area(0, millerindex.AreaParams{MinDistance: 1, MaxDistance: 1, MaxNeighbours: 1}, nil)
	assert.ErrorIs(t, err, millerindex.ErrClosed)
	_, err = idx.AreaAll(context.Background(), millerindex.AreaParams{MinDistance: 1, MaxDistance: 1, MaxNeighbours: 1}, nil)
	assert.ErrorIs(t, err, millerindex.ErrClosed)

	var nilIndex *millerindex.Index
	assert.NoError(t, nilIndex.Close())
}

func TestSharedController(t *testing.T) {
	// Room for exactly one dense 5x5x5 table.
	rc := resource.NewController(resource.Config{MemoryLimitBytes: 500})

	first, err := millerindex.New(testutil.Grid(2), symmetry.P1(), millerindex.WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, lookup.LayoutDense, first.Stats().Layout)

	second, err := millerindex.New(testutil.Grid(2), symmetry.P1(), millerindex.WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, lookup.LayoutSparse, second.Stats().Layout)

	require.NoError(t, first.Close())

	third, err := millerindex.New(testutil.Grid(2), symmetry.P1(), millerindex.WithResourceController(rc))
	require.NoError(t, err)
	assert.Equal(t, lookup.LayoutDense, third.Stats().Layout)
}

func TestQuerySlotCancellation(t *testing.T) {
	rc := resource.NewController(resource.Config{MaxConcurrentQueries: 1})
	idx, err := millerindex.New(testutil.Grid(1), symmetry.P1(), millerindex.WithResourceController(rc))
	require.NoError(t, err)

	require.True(t, rc.TryAcquireQuery())
	defer rc.ReleaseQuery()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = idx.AreaAll(ctx, millerindex.AreaParams{MinDistance: 1, MaxDistance: 1, MaxNeighbours: 4}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSeedQueryLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := millerindex.NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	rc := resource.NewController(resource.Config{MaxConcurrentQueries: 1})

	idx, err := millerindex.New(testutil.Grid(1), symmetry.P1(),
		millerindex.WithLogger(logger),
		millerindex.WithResourceController(rc),
	)
	require.NoError(t, err)
	defer idx.Close()

	_, err = idx.Area(13, millerindex.AreaParams{MinDistance: 1, MaxDistance: 1, MaxNeighbours: 10}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"msg":"area query completed","position":13,"count":7`)

	_, err = idx.Neighbourhood(99, 1)
	require.Error(t, err)
	assert.Contains(t, buf.String(), `"msg":"neighbourhood query rejected","position":99`)

	require.True(t, rc.TryAcquireQuery())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = idx.NeighbourhoodAll(ctx, 1)
	rc.ReleaseQuery()
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), `"msg":"waiting for query slot"`)
}

func TestConcurrentQueries(t *testing.T) {
	idx, err := millerindex.New(testutil.Grid(3), symmetry.P1())
	require.NoError(t, err)
	defer idx.Close()

	params := millerindex.AreaParams{MinDistance: 1, MaxDistance: 2, MaxNeighbours: 16}
	want, err := idx.AreaAll(context.Background(), params, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := idx.AreaAll(context.Background(), params, nil)
			assert.NoError(t, err)
			assert.Equal(t, want, got)

			pos, ok := idx.Find(miller.New(1, 1, 1))
			assert.True(t, ok)
			assert.Equal(t, testutil.GridPosition(3, miller.New(1, 1, 1)), pos)
		}()
	}
	wg.Wait()
}

func TestMetricsCollector(t *testing.T) {
	metrics := &millerindex.BasicMetricsCollector{}
	idx, err := millerindex.New(testutil.Grid(1), symmetry.P1(),
		millerindex.WithMetricsCollector(metrics),
		millerindex.WithLogger(millerindex.NoopLogger()),
	)
	require.NoError(t, err)

	idx.Find(miller.Origin)
	idx.Find(miller.New(5, 5, 5))

	_, err = idx.AreaAll(context.Background(), millerindex.AreaParams{MinDistance: 1, MaxDistance: 1, MaxNeighbours: 2}, nil)
	require.NoError(t, err)
	_, err = idx.NeighbourhoodAll(context.Background(), 1)
	require.NoError(t, err)
	_, err = idx.NeighbourhoodAll(context.Background(), -1)
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.BuildCount)
	assert.Zero(t, stats.BuildErrors)
	assert.Equal(t, int64(2), stats.FindCount)
	assert.Equal(t, int64(1), stats.FindMisses)
	assert.Equal(t, int64(1), stats.AreaCount)
	assert.Equal(t, int64(27), stats.AreaSeeds)
	assert.Equal(t, int64(54), stats.AreaEntries)
	assert.Equal(t, int64(2), stats.NeighbourhoodCount)
	assert.Equal(t, int64(1), stats.NeighbourhoodErrors)
	assert.Equal(t, int64(27), stats.NeighbourhoodSeeds)

	_, err = millerindex.New(testutil.Grid(1), symmetry.Description{}, millerindex.WithMetricsCollector(metrics))
	require.Error(t, err)
	assert.Equal(t, int64(1), metrics.GetStats().BuildErrors)
}
