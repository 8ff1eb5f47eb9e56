// Package metrics exposes catalog and API measurements as Prometheus metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agentstation/shelfmap/pkg/reconciler"
)

const namespace = "shelfmap"

// Collector implements the client's load observer and records API traffic.
// Each Collector owns its registry so tests can create as many as they like.
type Collector struct {
	registry *prometheus.Registry

	sourceRecords  *prometheus.GaugeVec
	sourceDuration *prometheus.HistogramVec
	sourceFailures *prometheus.CounterVec
	catalogBooks   prometheus.Gauge
	catalogMatched prometheus.Gauge
	categories     prometheus.Gauge
	loadDuration   prometheus.Histogram
	loadFailures   prometheus.Counter
	lastLoad       prometheus.Gauge
	filterResults  prometheus.Histogram
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
}

// New creates a Collector with Go runtime and process collectors registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		sourceRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_records",
			Help:      "Records parsed from each dataset on the last fetch",
		}, []string{"source"}),
		sourceDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "source_fetch_duration_seconds",
			Help:      "Time to fetch and parse one dataset",
			Buckets:   prometheus.DefBuckets,
		}, []string{"source", "status"}),
		sourceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "source_failures_total",
			Help:      "Dataset fetches that failed",
		}, []string{"source"}),
		catalogBooks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_books",
			Help:      "Books in the loaded catalog",
		}),
		catalogMatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_matched_books",
			Help:      "Books enriched by the secondary dataset",
		}),
		categories: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_categories",
			Help:      "Distinct category labels",
		}),
		loadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Time to load and reconcile both datasets",
			Buckets:   prometheus.DefBuckets,
		}),
		loadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_failures_total",
			Help:      "Loads that failed and kept the previous catalog",
		}),
		lastLoad: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_load_timestamp_seconds",
			Help:      "Unix time of the last successful load",
		}),
		filterResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "filter_results",
			Help:      "Number of books matched by a filter query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "API requests by status code and method",
		}, []string{"code", "method"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "API request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	c.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.sourceRecords,
		c.sourceDuration,
		c.sourceFailures,
		c.catalogBooks,
		c.catalogMatched,
		c.categories,
		c.loadDuration,
		c.loadFailures,
		c.lastLoad,
		c.filterResults,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// ObserveSource records one dataset fetch.
func (c *Collector) ObserveSource(name string, records int, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
		c.sourceFailures.WithLabelValues(name).Inc()
	} else {
		c.sourceRecords.WithLabelValues(name).Set(float64(records))
	}
	c.sourceDuration.WithLabelValues(name, status).Observe(elapsed.Seconds())
}

// ObserveLoad records a successful load.
func (c *Collector) ObserveLoad(stats reconciler.ResultStatistics, elapsed time.Duration) {
	c.catalogBooks.Set(float64(stats.Unified))
	c.catalogMatched.Set(float64(stats.Matched))
	c.categories.Set(float64(stats.Categories))
	c.loadDuration.Observe(elapsed.Seconds())
	c.lastLoad.SetToCurrentTime()
}

// ObserveLoadFailure records a failed load.
func (c *Collector) ObserveLoadFailure(elapsed time.Duration, _ error) {
	c.loadFailures.Inc()
	c.loadDuration.Observe(elapsed.Seconds())
}

// ObserveFilter records the size of a filter result.
func (c *Collector) ObserveFilter(results int) {
	c.filterResults.Observe(float64(results))
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Middleware counts and times requests passing through next.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(c.httpDuration,
		promhttp.InstrumentHandlerCounter(c.httpRequests, next),
	)
}
