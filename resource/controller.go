package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// ErrMemoryLimitExceeded is returned when memory limit would be exceeded.
var ErrMemoryLimitExceeded = errors.New("memory limit exceeded")

// DefaultMemoryLimitBytes is the budget used when Config.MemoryLimitBytes is 0
// and no explicit unlimited controller is requested.
const DefaultMemoryLimitBytes = 1 << 30

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for managed memory.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentQueries is the maximum number of concurrent batch queries.
	// If 0, defaults to 1.
	MaxConcurrentQueries int64
}

// Controller manages memory and query concurrency.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	querySem *semaphore.Weighted
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentQueries <= 0 {
		cfg.MaxConcurrentQueries = 1
	}

	c := &Controller{
		cfg:      cfg,
		querySem: semaphore.NewWeighted(cfg.MaxConcurrentQueries),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	return c
}

// AcquireMemory attempts to reserve memory.
// Returns ErrMemoryLimitExceeded if limit would be exceeded.
// Non-blocking - callers decide what to do instead.
func (c *Controller) AcquireMemory(bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes || !c.memSem.TryAcquire(bytes) {
			return ErrMemoryLimitExceeded
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// MemoryLimit returns the configured memory limit in bytes (0 if unlimited).
func (c *Controller) MemoryLimit() int64 {
	if c == nil {
		return 0
	}
	return c.cfg.MemoryLimitBytes
}

// AcquireQuery reserves a batch query slot.
// Blocks until a slot is free or ctx is done.
func (c *Controller) AcquireQuery(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.querySem.Acquire(ctx, 1)
}

// TryAcquireQuery attempts to reserve a batch query slot without blocking.
func (c *Controller) TryAcquireQuery() bool {
	if c == nil {
		return true
	}
	return c.querySem.TryAcquire(1)
}

// ReleaseQuery releases a batch query slot.
func (c *Controller) ReleaseQuery() {
	if c == nil {
		return
	}
	c.querySem.Release(1)
}
