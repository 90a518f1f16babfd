// Package metrics holds the Prometheus collectors of the token service and
// the handler that exposes them.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tokenkeeper"

// Auth failure reasons used as the "reason" label.
const (
	ReasonMissing     = "missing_credentials"
	ReasonInvalid     = "invalid_token"
	ReasonExpired     = "token_expired"
	ReasonCredentials = "invalid_credentials"
	ReasonInternal    = "internal"
)

// Metrics owns a private registry so that several instances (one per test,
// for example) never collide.
type Metrics struct {
	registry *prometheus.Registry

	tokensIssued       prometheus.Counter
	tokensRevoked      prometheus.Counter
	authFailures       *prometheus.CounterVec
	httpRequestLatency prometheus.ObserverVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Number of tokens handed out by /obtain-token.",
		}),
		tokensRevoked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revocations_total",
			Help:      "Number of tokens revoked.",
		}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Rejected token exchanges and authentications by reason.",
		}, []string{"reason"}),
		httpRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Histogram of latencies for HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "code"}),
	}

	m.registry.MustRegister(
		m.tokensIssued,
		m.tokensRevoked,
		m.authFailures,
		m.httpRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) TokenIssued() { m.tokensIssued.Inc() }

func (m *Metrics) TokenRevoked() { m.tokensRevoked.Inc() }

func (m *Metrics) AuthFailed(reason string) { m.authFailures.WithLabelValues(reason).Inc() }

// ObserveRequest records one HTTP request. path must be the route pattern,
// not the raw URL, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, path string, code int, d time.Duration) {
	m.httpRequestLatency.WithLabelValues(method, path, strconv.Itoa(code)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
