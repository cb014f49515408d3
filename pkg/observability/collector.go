package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics of the API process. Each collector
// owns its registry, so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Business metrics
	MoviesCreated      prometheus.Counter
	MoviesDeleted      prometheus.Counter
	SideEffectFailures *prometheus.CounterVec

	// Bus metrics
	Commands *prometheus.CounterVec
	Queries  *prometheus.CounterVec
}

// NewCollector creates a new metrics collector with the given namespace
func NewCollector(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		MoviesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movies_created_total",
			Help:      "Total number of movies created",
		}),
		MoviesDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "movies_deleted_total",
			Help:      "Total number of movies deleted",
		}),
		SideEffectFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "side_effect_failures_total",
				Help:      "Side effects that failed, by effect",
			},
			[]string{"effect"},
		),
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands dispatched, by type and outcome",
			},
			[]string{"command", "status"},
		),
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Queries dispatched, by type and outcome",
			},
			[]string{"query", "status"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.MoviesCreated,
		c.MoviesDeleted,
		c.SideEffectFailures,
		c.Commands,
		c.Queries,
	)

	return c
}

// Handler exposes the collector's registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// RecordHTTPRequest records one served request
func (c *Collector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if c == nil {
		return
	}
	c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// SideEffectFailed counts a swallowed side-effect failure
func (c *Collector) SideEffectFailed(effect string) {
	if c == nil {
		return
	}
	c.SideEffectFailures.WithLabelValues(effect).Inc()
}

// MovieCreated counts a created movie
func (c *Collector) MovieCreated() {
	if c == nil {
		return
	}
	c.MoviesCreated.Inc()
}

// MovieDeleted counts a deleted movie
func (c *Collector) MovieDeleted() {
	if c == nil {
		return
	}
	c.MoviesDeleted.Inc()
}

// CommandExecuted counts a dispatched command
func (c *Collector) CommandExecuted(command, status string) {
	if c == nil {
		return
	}
	c.Commands.WithLabelValues(command, status).Inc()
}

// QueryExecuted counts a dispatched query
func (c *Collector) QueryExecuted(query, status string) {
	if c == nil {
		return
	}
	c.Queries.WithLabelValues(query, status).Inc()
}
