// Package metrics holds the Prometheus collectors of the shop and their HTTP exposition.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fsanano/garden-shop/internal/model"
)

const namespace = "garden_shop"

// Purchase outcomes.
const (
	OutcomeSuccess             = "success"
	OutcomeInsufficientBalance = "insufficient_balance"
	OutcomeNotFound            = "not_found"
	OutcomeInvalid             = "invalid"
	OutcomeError               = "error"
)

type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	purchasesTotal  *prometheus.CounterVec
}

// New creates the collectors on their own registry, together with the Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests served.",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		purchasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "purchases_total",
				Help:      "Purchases by outcome.",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.purchasesTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry, DisableCompression: true})
}

// Middleware records every request under its chi route pattern, so path parameters do not
// multiply the series.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// ObservePurchase counts a purchase under the outcome its error maps to.
func (m *Metrics) ObservePurchase(err error) {
	m.purchasesTotal.WithLabelValues(PurchaseOutcome(err)).Inc()
}

func PurchaseOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, model.ErrInsufficientBalance):
		return OutcomeInsufficientBalance
	case errors.Is(err, model.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, &model.ValidationError{}):
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}
