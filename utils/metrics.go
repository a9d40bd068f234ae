package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PageCacheLookups counts cached page lookups by result (hit, miss).
	PageCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_page_cache_lookups_total",
		Help: "Cached page lookups by result",
	}, []string{"result"})

	// CacheErrors counts cache store failures by operation.
	CacheErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_cache_errors_total",
		Help: "Cache store errors by operation",
	}, []string{"operation"})

	// WriteOutcomes counts write operations by operation and outcome (done, invalid, denied).
	WriteOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yatube_write_outcomes_total",
		Help: "Write operations by outcome",
	}, []string{"operation", "outcome"})
)
