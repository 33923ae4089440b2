// Package metrics owns the Prometheus collectors for the API and the worker.
package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by status code, method and route pattern.",
	}, []string{"code", "method", "path"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and route pattern.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	requestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "HTTP requests currently being served.",
	})

	checkoutsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})

	publishFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "event_publish_failures_total",
		Help:      "Domain events that could not be handed to the broker.",
	}, []string{"type"})

	notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_total",
		Help:      "Notification deliveries by event type and final status.",
	}, []string{"type", "status"})

	cacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Cache lookups by key prefix and result.",
	}, []string{"prefix", "result"})
)

// Checkout outcomes.
const (
	CheckoutPlaced     = "placed"
	CheckoutOutOfStock = "out_of_stock"
	CheckoutEmptyCart  = "empty_cart"
	CheckoutNoAddress  = "no_address"
	CheckoutConflict   = "conflict"
	CheckoutError      = "error"
)

// Notification outcomes.
const (
	NotificationSent    = "sent"
	NotificationFailed  = "failed"
	NotificationSkipped = "skipped"
)

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

func RecordCheckout(outcome string) {
	checkoutsTotal.WithLabelValues(outcome).Inc()
}

func RecordPublishFailure(eventType string) {
	publishFailuresTotal.WithLabelValues(eventType).Inc()
}

func RecordNotification(eventType, status string) {
	notificationsTotal.WithLabelValues(eventType, status).Inc()
}

func RecordCacheLookup(prefix, result string) {
	cacheLookupsTotal.WithLabelValues(prefix, result).Inc()
}

func init() {
	// the default registry may already carry these when embedded elsewhere
	for _, c := range []prometheus.Collector{
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	} {
		if err := prometheus.Register(c); err != nil {
			slog.Debug("Runtime collector not registered", slog.Any("error", err))
		}
	}
}

type codeRecorder struct {
	http.ResponseWriter
	code int
}

func (cr *codeRecorder) WriteHeader(code int) {
	cr.code = code
	cr.ResponseWriter.WriteHeader(code)
}

// Middleware labels requests with the matched ServeMux pattern, so it must
// wrap the mux directly for r.Pattern to be filled in.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		requestsInFlight.Inc()
		defer requestsInFlight.Dec()

		start := time.Now()
		rec := &codeRecorder{ResponseWriter: w, code: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}

		requestsTotal.WithLabelValues(strconv.Itoa(rec.code), r.Method, route).Inc()
		requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the default registry for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
