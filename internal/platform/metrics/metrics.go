// Package metrics collects Prometheus metrics for the API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the metrics surface used by services.
type Recorder interface {
	RecordPrediction(model, label string, duration time.Duration)
	RecordLogin(outcome string)
}

// Login outcomes.
const (
	LoginSuccess = "success"
	LoginFailure = "failure"
)

// Collector records Prometheus metrics.
type Collector struct {
	requests       *prometheus.CounterVec
	latency        *prometheus.HistogramVec
	inFlight       prometheus.Gauge
	predictions    *prometheus.CounterVec
	predictLatency *prometheus.HistogramVec
	logins         *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livercare_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livercare_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "livercare_http_requests_in_flight",
			Help: "HTTP requests currently being served.",
		}),
		predictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livercare_predictions_total",
			Help: "Stage predictions by model and predicted label.",
		}, []string{"model", "label"}),
		predictLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "livercare_prediction_duration_seconds",
			Help:    "Model inference latency in seconds.",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}, []string{"model"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "livercare_logins_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.inFlight,
		c.predictions,
		c.predictLatency,
		c.logins,
	)

	return c
}

// RecordPrediction counts a prediction and observes its latency.
func (c *Collector) RecordPrediction(model, label string, duration time.Duration) {
	c.predictions.WithLabelValues(model, label).Inc()
	c.predictLatency.WithLabelValues(model).Observe(duration.Seconds())
}

// RecordLogin counts a login attempt.
func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

// Middleware records request count and latency keyed by route pattern. It
// must run outside the request logger so the status reflects the written
// response.
func (c *Collector) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ec echo.Context) error {
			c.inFlight.Inc()
			defer c.inFlight.Dec()

			start := time.Now()
			err := next(ec)

			req := ec.Request()
			route := ec.Path()
			if route == "" {
				route = "unmatched"
			}
			status := ec.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			c.requests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
			c.latency.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler returns the Prometheus scrape handler.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards all metrics.
type Nop struct{}

func (Nop) RecordPrediction(string, string, time.Duration) {}
func (Nop) RecordLogin(string)                             {}
