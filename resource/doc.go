// Package resource implements the Controller that governs memory and
// concurrency for lookup tensors and the queries run against them.
//
// Two resource types are managed:
//
//   - Memory: the dense lookup table is the only large allocation. Builds
//     reserve its size up front (non-blocking, fail-fast) and fall back to
//     the sparse layout, or fail, when the budget is exhausted.
//   - Concurrency: whole-dataset batch queries take a query slot so that a
//     shared tensor is not saturated by many concurrent batch jobs.
//
// # Memory Management
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB limit
//	})
//
//	if err := rc.AcquireMemory(cells * 4); err != nil {
//	    // ErrMemoryLimitExceeded - caller picks another layout
//	}
//	defer rc.ReleaseMemory(cells * 4)
//
// # Query Slots
//
//	if err := rc.AcquireQuery(ctx); err != nil {
//	    return err
//	}
//	defer rc.ReleaseQuery()
//
// # Nil Safety
//
// All methods handle a nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
