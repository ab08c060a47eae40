// Lookalike - Content-Based Product Recommendations
// Copyright 2026 Lookalike Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lookalike-labs/lookalike

// Package metrics exposes Prometheus collectors for production
// observability: API latency and throughput, catalog ingestion,
// similarity builds, recommendation traffic, and session lifecycle.
// All collectors register on the default registry via promauto and are
// served on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of in-flight API requests",
		},
	)

	// Catalog metrics
	CatalogLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_loads_total",
			Help: "Total number of catalog upload attempts",
		},
		[]string{"result"}, // "ok", "malformed", "error"
	)

	CatalogRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_rows",
			Help: "Row count of the most recently loaded catalog",
		},
	)

	// Similarity build metrics
	SimilarityBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "similarity_build_duration_seconds",
			Help:    "Duration of similarity model builds in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
	)

	SimilarityMatrixSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "similarity_matrix_rows",
			Help: "Dimension of the most recently built similarity matrix",
		},
	)

	// Recommendation metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"kind"}, // "product", "purchases", "filtered", "popular"
	)

	FallbackServed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_fallback_total",
			Help: "Total number of responses served from the popular fallback",
		},
	)

	// Session metrics
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sessions_active",
			Help: "Current number of live sessions",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_expired_total",
			Help: "Total number of sessions removed by the TTL janitor",
		},
	)

	SessionsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sessions_evicted_total",
			Help: "Total number of sessions evicted by the session cap",
		},
	)
)

// RecordAPIRequest records one completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCatalogLoad records one catalog upload attempt and, on success,
// the retained row count.
func RecordCatalogLoad(result string, rows int) {
	CatalogLoadsTotal.WithLabelValues(result).Inc()
	if result == "ok" {
		CatalogRows.Set(float64(rows))
	}
}
