package millerindex

import (
	"log/slog"
	"runtime"

	"github.com/hupe1980/millerindex/lookup"
	"github.com/hupe1980/millerindex/resource"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	layout           lookup.Layout
	memoryLimit      int64
	maxQueries       int64
	controller       *resource.Controller
	workers          int
	strict           bool
}

// Option configures New.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &millerindex.BasicMetricsCollector{}
//	idx, _ := millerindex.New(indices, sym, millerindex.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Areas: %d, Avg latency: %dns\n", stats.AreaCount, stats.AreaAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := millerindex.NewJSONLogger(slog.LevelInfo)
//	idx, _ := millerindex.New(indices, sym, millerindex.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithLayout selects the lookup table layout. The default, lookup.LayoutAuto,
// uses a dense table when it fits the memory budget.
func WithLayout(l lookup.Layout) Option {
	return func(o *options) {
		o.layout = l
	}
}

// WithMemoryLimit sets the budget for the dense lookup table in bytes.
// A value of 0 disables the limit. Ignored when WithResourceController is set.
func WithMemoryLimit(bytes int64) Option {
	return func(o *options) {
		o.memoryLimit = bytes
	}
}

// WithMaxConcurrentQueries bounds the number of whole-dataset queries that
// may run at once. Defaults to GOMAXPROCS. Ignored when
// WithResourceController is set.
func WithMaxConcurrentQueries(n int64) Option {
	return func(o *options) {
		o.maxQueries = n
	}
}

// WithResourceController shares a resource controller between indexes, so
// that their dense tables draw on one memory budget.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.controller = rc
	}
}

// WithWorkers sets the number of goroutines used per whole-dataset query.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithStrictUniqueness makes New fail when two input indices share an orbit
// member, instead of letting the later one win.
func WithStrictUniqueness() Option {
	return func(o *options) {
		o.strict = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		layout:           lookup.LayoutAuto,
		memoryLimit:      resource.DefaultMemoryLimitBytes,
		maxQueries:       int64(runtime.GOMAXPROCS(0)),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.controller == nil {
		o.controller = resource.NewController(resource.Config{
			MemoryLimitBytes:     o.memoryLimit,
			MaxConcurrentQueries: o.maxQueries,
		})
	}
	return o
}
