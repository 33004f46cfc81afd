package observability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/RespawnSociety/MesinKasir/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mesinkasir"

// Metrics collects the Prometheus series exposed on /metrics.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	salesTotal      *prometheus.CounterVec
	salesAmount     *prometheus.CounterVec
	loginsTotal     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mesinkasir_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mesinkasir_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	sales := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mesinkasir_sales_total",
		Help: "Recorded sales by payment method.",
	}, []string{"pay_method"})
	amount := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mesinkasir_sales_amount_total",
		Help: "Sum of recorded sale totals in minor currency units.",
	}, []string{"pay_method"})
	logins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mesinkasir_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	registry.MustRegister(requests, duration, sales, amount, logins)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		salesTotal:      sales,
		salesAmount:     amount,
		loginsTotal:     logins,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records count and latency for every request by route pattern.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if m == nil {
			return c.Next()
		}
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" {
			route = "unknown"
		}
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// SaleRecorded counts one persisted sale.
func (m *Metrics) SaleRecorded(method model.PayMethod, total int64) {
	if m == nil {
		return
	}
	m.salesTotal.WithLabelValues(method.String()).Inc()
	m.salesAmount.WithLabelValues(method.String()).Add(float64(total))
}

// LoginAttempt counts a login by outcome.
func (m *Metrics) LoginAttempt(success bool) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.loginsTotal.WithLabelValues(outcome).Inc()
}

// RegisterGauge exposes a live value sampled on every scrape, named
// mesinkasir_<name>.
func (m *Metrics) RegisterGauge(name, help string, fn func() float64) {
	if m == nil {
		return
	}
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, fn))
}
