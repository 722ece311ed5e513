// Package observability exports millerindex metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	collector := observability.NewPrometheusCollector(reg)
//	idx, _ := millerindex.New(indices, sym, millerindex.WithMetricsCollector(collector))
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package observability
