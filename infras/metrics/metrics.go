package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rentro"

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	once sync.Once

	bookingRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_requests_total",
			Help:      "Booking request operations by action and result.",
		},
		[]string{"action", "result"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status code.",
		},
		[]string{"route", "method", "code"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_events_consumed_total",
			Help:      "Booking request lifecycle events consumed by type.",
		},
		[]string{"type"},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "request_api_calls_total",
			Help:      "Calls made to the remote request API by operation and status code.",
		},
		[]string{"operation", "code"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingRequests, httpRequests, httpDuration, upstreamRequests, events)
	})
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// IncBooking counts one booking request operation.
func IncBooking(action string, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultFailure
	}

	bookingRequests.WithLabelValues(action, result).Inc()
}

func ObserveHTTP(route, method string, code int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// IncUpstream counts a remote request API call. code is 0 when no response was received.
func IncUpstream(operation string, code int) {
	upstreamRequests.WithLabelValues(operation, strconv.Itoa(code)).Inc()
}

func IncEvent(eventType string) {
	events.WithLabelValues(eventType).Inc()
}
