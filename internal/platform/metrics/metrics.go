package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"zoo-admin/internal/domain/status"
)

// Config de métricas. Con Enabled=false todo es no-op.
type Config struct {
	Enabled   bool
	Namespace string
}

// Metrics agrupa los collectors del servicio en un registry propio.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	statusEvaluations *prometheus.CounterVec
}

func New(cfg Config) *Metrics {
	if !cfg.Enabled {
		return &Metrics{}
	}

	ns := cfg.Namespace
	if ns == "" {
		ns = "zoo"
	}

	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: ns,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		statusEvaluations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: ns,
				Name:      "animal_status_evaluations_total",
				Help:      "Animal status computations by outcome",
			},
			[]string{"active", "eating"},
		),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.statusEvaluations,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

func (m *Metrics) Enabled() bool { return m != nil && m.registry != nil }

// ObserveRequest registra una request HTTP ya terminada.
func (m *Metrics) ObserveRequest(method, route string, code int, d time.Duration) {
	if !m.Enabled() {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveStatus cuenta cada cálculo del motor de estado.
func (m *Metrics) ObserveStatus(r status.Result) {
	if !m.Enabled() {
		return
	}
	m.statusEvaluations.WithLabelValues(strconv.FormatBool(r.IsActive), strconv.FormatBool(r.IsEating)).Inc()
}

// Handler expone el registry; 404 si las métricas están deshabilitadas.
func (m *Metrics) Handler() http.Handler {
	if !m.Enabled() {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Gatherer permite inspeccionar el registry en tests.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if !m.Enabled() {
		return prometheus.NewRegistry()
	}
	return m.registry
}
