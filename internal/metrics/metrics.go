// Package metrics exposes the Prometheus instrumentation for the
// repository and cache.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profile_cache_hits_total",
		Help: "Tracks profile cache hits.",
	})

	cacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "profile_cache_misses_total",
		Help: "Tracks profile cache misses.",
	})

	repositoryOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "repository_operations_total",
		Help: "Tracks repository operations by name and outcome.",
	}, []string{"operation", "outcome"})
)

// Registry returns a registry with process, Go and repository metrics.
func Registry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		cacheHits,
		cacheMisses,
		repositoryOps,
	)

	return registry
}

// CacheHit records a profile cache hit.
func CacheHit() {
	cacheHits.Inc()
}

// CacheMiss records a profile cache miss.
func CacheMiss() {
	cacheMisses.Inc()
}

// RepositoryOp records one repository operation outcome.
func RepositoryOp(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	repositoryOps.WithLabelValues(operation, outcome).Inc()
}
