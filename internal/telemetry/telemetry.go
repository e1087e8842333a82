// Package telemetry exports Prometheus metrics for the service.
package telemetry

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsNamespace prefixes every application metric.
const MetricsNamespace = "day3"

// HostInfo supplies the values behind the info and uptime metrics.
type HostInfo interface {
	Hostname() string
	Uptime() time.Duration
}

// Metrics holds the service's Prometheus metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Info            *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// NewMetrics creates and registers all metrics on a fresh registry, along
// with the Go runtime and process collectors.
func NewMetrics(version string, host HostInfo) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewMetricsWithRegistry(reg, reg, version, host)
}

// NewMetricsWithRegistry registers metrics on reg and serves them from g.
func NewMetricsWithRegistry(
	reg prometheus.Registerer,
	g prometheus.Gatherer,
	version string,
	host HostInfo,
) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{gatherer: g}

	m.RequestsTotal = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: MetricsNamespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by response branch",
	}, []string{"route"})

	m.RequestDuration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: MetricsNamespace,
		Name:      "http_request_duration_seconds",
		Help:      "Time to build and write a response",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"route"})

	m.Info = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "app_info",
		Help:      "Static build and host information, always 1",
	}, []string{"version", "hostname"})
	m.Info.WithLabelValues(version, host.Hostname()).Set(1)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: MetricsNamespace,
		Name:      "app_uptime_seconds",
		Help:      "Seconds since the process started",
	}, func() float64 {
		return host.Uptime().Seconds()
	})

	return m
}

// Middleware counts and times every request. classify maps a request path
// to its route label.
func (m *Metrics) Middleware(classify func(path string) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		route := classify(c.Request.URL.Path)

		c.Next()

		m.RequestsTotal.WithLabelValues(route).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
