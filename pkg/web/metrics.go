// Copyright © 2018 One Concern

package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the metrics collected by the registry API
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "versiond")
	Namespace string

	// Buckets are the histogram buckets for request durations (default: prometheus.DefBuckets)
	Buckets []float64

	// Registry is the prometheus registry to use (default: prometheus.DefaultRegisterer)
	Registry prometheus.Registerer
}

// MetricsOption configures the metrics
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithBuckets sets the histogram buckets
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the prometheus registry
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "versiond",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics collected by the registry API
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseBytes   *prometheus.CounterVec
	storeFailures   prometheus.Counter
}

// NewMetrics registers the registry API metrics:
//   - versiond_http_requests_total: counter of requests by method, route and status code
//   - versiond_http_request_duration_seconds: histogram of request durations by route
//   - versiond_http_response_bytes_total: counter of bytes written by route
//   - versiond_store_failures_total: counter of failed version store loads
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, apply := range opts {
		apply(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests served",
		}, []string{"method", "route", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   config.Buckets,
		}, []string{"route"}),

		responseBytes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Subsystem: "http",
			Name:      "response_bytes_total",
			Help:      "Total number of bytes written in HTTP responses",
		}, []string{"route"}),

		storeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "store_failures_total",
			Help:      "Total number of version store loads which failed",
		}),
	}
}
