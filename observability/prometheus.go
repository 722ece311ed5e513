package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/millerindex"
)

const namespace = "millerindex"

// PrometheusCollector implements millerindex.MetricsCollector with
// Prometheus counters and histograms.
type PrometheusCollector struct {
	opLatency *prometheus.HistogramVec
	ops       *prometheus.CounterVec
	finds     *prometheus.CounterVec
	seeds     *prometheus.CounterVec
	entries   prometheus.Counter
	indices   prometheus.Gauge
}

var _ millerindex.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector creates the collector and registers its metrics
// with reg. A nil reg registers with prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	c := &PrometheusCollector{
		opLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_latency_seconds",
			Help:      "Latency of index builds and whole-dataset queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "status"}),
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "operations_total",
			Help:      "Total index builds and whole-dataset queries",
		}, []string{"op", "status"}),
		finds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "finds_total",
			Help:      "Total single lookups",
		}, []string{"result"}),
		seeds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seeds_total",
			Help:      "Total seeds processed by whole-dataset queries",
		}, []string{"op"}),
		entries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "area_entries_total",
			Help:      "Total entries produced by area queries",
		}),
		indices: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_reflections",
			Help:      "Size of the most recently built index",
		}),
	}

	reg.MustRegister(c.opLatency, c.ops, c.finds, c.seeds, c.entries, c.indices)
	return c
}

// RecordBuild implements millerindex.MetricsCollector.
func (c *PrometheusCollector) RecordBuild(indices int, d time.Duration, err error) {
	c.observe("build", d, err)
	if err == nil {
		c.indices.Set(float64(indices))
	}
}

// RecordFind implements millerindex.MetricsCollector.
func (c *PrometheusCollector) RecordFind(found bool) {
	if found {
		c.finds.WithLabelValues("hit").Inc()
		return
	}
	c.finds.WithLabelValues("miss").Inc()
}

// RecordNeighbourhood implements millerindex.MetricsCollector.
func (c *PrometheusCollector) RecordNeighbourhood(seeds int, d time.Duration, err error) {
	c.observe("neighbourhood", d, err)
	c.seeds.WithLabelValues("neighbourhood").Add(float64(seeds))
}

// RecordArea implements millerindex.MetricsCollector.
func (c *PrometheusCollector) RecordArea(seeds, entries int, d time.Duration, err error) {
	c.observe("area", d, err)
	c.seeds.WithLabelValues("area").Add(float64(seeds))
	c.entries.Add(float64(entries))
}

func (c *PrometheusCollector) observe(op string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.opLatency.WithLabelValues(op, status).Observe(d.Seconds())
	c.ops.WithLabelValues(op, status).Inc()
}
