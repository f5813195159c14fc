// Coconut Farm - Tree Care Tracking and Farm Management
// Copyright 2026 Iresh Udayanga
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ireshudayanga/coconut-farm-application

// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// Store metrics
	StoreQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mongo_query_duration_seconds",
			Help:    "Duration of MongoDB operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "collection"},
	)

	StoreQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mongo_query_errors_total",
			Help: "Total number of MongoDB operation errors",
		},
		[]string{"operation", "collection"},
	)

	// Backup metrics
	BackupExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "backup_exports_total",
			Help: "Total number of backup exports",
		},
		[]string{"mode", "outcome"}, // mode: "month", "range"
	)

	BackupExportDocuments = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "backup_export_documents",
			Help:    "Number of documents per exported payload",
			Buckets: []float64{0, 10, 50, 100, 500, 1000, 5000, 10000},
		},
		[]string{"category"},
	)

	RestoreDocumentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "restore_documents_total",
			Help: "Total number of documents processed by restore runs",
		},
		[]string{"category", "outcome"}, // outcome: "applied", "skipped"
	)

	// Image upload circuit breaker
	UploadRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_upload_requests_total",
			Help: "Total number of image upload attempts",
		},
		[]string{"outcome"}, // "success", "failure", "rejected"
	)

	UploadBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "image_upload_breaker_state",
			Help: "Image upload circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
	)

	// Rate limiting
	RateLimitRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_rejections_total",
			Help: "Total number of requests rejected by the rate limiter",
		},
	)
)

// ObserveHTTPRequest records one completed request.
func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	HTTPRequestDuration.WithLabelValues(method, route, code).Observe(duration.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, code).Inc()
}

// ObserveStoreQuery records one store operation and its error, if any.
func ObserveStoreQuery(operation, collection string, duration time.Duration, err error) {
	StoreQueryDuration.WithLabelValues(operation, collection).Observe(duration.Seconds())
	if err != nil {
		StoreQueryErrors.WithLabelValues(operation, collection).Inc()
	}
}
