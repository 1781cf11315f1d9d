// Package metrics collects and exposes Prometheus metrics for the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector records request and auth metrics on a Prometheus registry.
type Collector struct {
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	logins         prometheus.Counter
	loginFailures  prometheus.Counter
	verifications  *prometheus.CounterVec
}

// NewCollector registers the API metrics on reg and returns the collector.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alumni_api_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status_code"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "alumni_api_request_duration_seconds",
			Help:    "HTTP request latency in seconds by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alumni_api_logins_total",
			Help: "Successful CAS logins.",
		}),
		loginFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alumni_api_login_failures_total",
			Help: "Rejected CAS ticket validations.",
		}),
		verifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "alumni_api_identifier_verifications_total",
			Help: "Identifier verification requests by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		c.requests,
		c.requestLatency,
		c.logins,
		c.loginFailures,
		c.verifications,
	)

	return c
}

// RecordRequest counts one finished HTTP request.
func (c *Collector) RecordRequest(method, route string, statusCode int) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
}

// RecordLatency observes one request's duration.
func (c *Collector) RecordLatency(route string, duration time.Duration) {
	c.requestLatency.WithLabelValues(route).Observe(duration.Seconds())
}

// RecordLogin counts a successful login.
func (c *Collector) RecordLogin() {
	c.logins.Inc()
}

// RecordLoginFailure counts a rejected ticket validation.
func (c *Collector) RecordLoginFailure() {
	c.loginFailures.Inc()
}

// RecordVerification counts an identifier verification by outcome
// ("found", "miss" or "forbidden").
func (c *Collector) RecordVerification(outcome string) {
	c.verifications.WithLabelValues(outcome).Inc()
}

// Handler returns the HTTP handler Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
