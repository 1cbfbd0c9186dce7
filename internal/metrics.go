package internal

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/midware/go-fetch/internal/model"
)

// Metrics holds the collectors the [Instrument] middleware feeds.
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics builds the request collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fetch_requests_total",
				Help: "Total requests",
			},
			[]string{"method", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fetch_request_duration_seconds",
				Help:    "Request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Instrument counts requests by method and status class and observes their
// duration. Composed via Use it measures whole logical requests, redirect
// chain included; requests that fail before producing a status count under
// the "error" class.
func Instrument(m *Metrics) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req *model.Request) (*model.Response, error) {
			start := time.Now()
			method := methodOf(req)
			resp, err := next(ctx, req)
			m.duration.WithLabelValues(method).Observe(time.Since(start).Seconds())
			if err != nil {
				m.requests.WithLabelValues(method, "error").Inc()
				return resp, err
			}
			m.requests.WithLabelValues(method, statusClass(resp.Status)).Inc()
			return resp, nil
		}
	}
}

func statusClass(status int) string {
	if status < 100 || status > 599 {
		return "other"
	}
	return fmt.Sprintf("%dxx", status/100)
}
