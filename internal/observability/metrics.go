package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts HTTP requests by route, method and status.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// ErrorsTotal counts requests that resolved to a domain error.
	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total requests that ended in an application error",
		},
		[]string{"route", "method", "code"},
	)

	// ApplicationsSubmitted counts accepted membership applications.
	ApplicationsSubmitted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "membership_applications_submitted_total",
			Help: "Total membership applications accepted",
		},
	)

	// ApplicationsDecided counts admin decisions by outcome.
	ApplicationsDecided = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "membership_applications_decided_total",
			Help: "Total membership application decisions",
		},
		[]string{"decision"}, // approve|reject
	)

	// BlobOperations counts blob store calls by operation and result.
	BlobOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blob_operations_total",
			Help: "Total blob store operations",
		},
		[]string{"op", "result"}, // put|get|delete, ok|error
	)
)

// MetricsHandler serves the /metrics endpoint.
var MetricsHandler = promhttp.Handler

// RegisterMetrics installs all collectors into the default registry.
func RegisterMetrics() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(ErrorsTotal)
	prometheus.MustRegister(ApplicationsSubmitted)
	prometheus.MustRegister(ApplicationsDecided)
	prometheus.MustRegister(BlobOperations)
}
