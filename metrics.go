package millerindex

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems; the
// observability package provides a Prometheus implementation.
type MetricsCollector interface {
	// RecordBuild is called after each index build.
	// indices is the size of the indexed set, err is nil if successful.
	RecordBuild(indices int, duration time.Duration, err error)

	// RecordFind is called after each single lookup.
	RecordFind(found bool)

	// RecordNeighbourhood is called after each whole-dataset axis query.
	RecordNeighbourhood(seeds int, duration time.Duration, err error)

	// RecordArea is called after each whole-dataset area query.
	// entries is the total number of list entries produced.
	RecordArea(seeds, entries int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)         {}
func (NoopMetricsCollector) RecordFind(bool)                               {}
func (NoopMetricsCollector) RecordNeighbourhood(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordArea(int, int, time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount          atomic.Int64
	BuildErrors         atomic.Int64
	BuildTotalNanos     atomic.Int64
	FindCount           atomic.Int64
	FindMisses          atomic.Int64
	NeighbourhoodCount  atomic.Int64
	NeighbourhoodErrors atomic.Int64
	NeighbourhoodSeeds  atomic.Int64
	AreaCount           atomic.Int64
	AreaErrors          atomic.Int64
	AreaSeeds           atomic.Int64
	AreaEntries         atomic.Int64
	AreaTotalNanos      atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(indices int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
	}
}

// RecordFind implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFind(found bool) {
	b.FindCount.Add(1)
	if !found {
		b.FindMisses.Add(1)
	}
}

// RecordNeighbourhood implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNeighbourhood(seeds int, duration time.Duration, err error) {
	b.NeighbourhoodCount.Add(1)
	if err != nil {
		b.NeighbourhoodErrors.Add(1)
		return
	}
	b.NeighbourhoodSeeds.Add(int64(seeds))
}

// RecordArea implements MetricsCollector.
func (b *BasicMetricsCollector) RecordArea(seeds, entries int, duration time.Duration, err error) {
	b.AreaCount.Add(1)
	b.AreaTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.AreaErrors.Add(1)
		return
	}
	b.AreaSeeds.Add(int64(seeds))
	b.AreaEntries.Add(int64(entries))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:          b.BuildCount.Load(),
		BuildErrors:         b.BuildErrors.Load(),
		BuildAvgNanos:       avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		FindCount:           b.FindCount.Load(),
		FindMisses:          b.FindMisses.Load(),
		NeighbourhoodCount:  b.NeighbourhoodCount.Load(),
		NeighbourhoodErrors: b.NeighbourhoodErrors.Load(),
		NeighbourhoodSeeds:  b.NeighbourhoodSeeds.Load(),
		AreaCount:           b.AreaCount.Load(),
		AreaErrors:          b.AreaErrors.Load(),
		AreaSeeds:           b.AreaSeeds.Load(),
		AreaEntries:         b.AreaEntries.Load(),
		AreaAvgNanos:        avg(b.AreaTotalNanos.Load(), b.AreaCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount          int64
	BuildErrors         int64
	BuildAvgNanos       int64
	FindCount           int64
	FindMisses          int64
	NeighbourhoodCount  int64
	NeighbourhoodErrors int64
	NeighbourhoodSeeds  int64
	AreaCount           int64
	AreaErrors          int64
	AreaSeeds           int64
	AreaEntries         int64
	AreaAvgNanos        int64
}
