package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests by route, method and status"},
		[]string{"route", "method", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	RoomConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "room_booking_conflicts_total", Help: "Total event creations rejected by the room overlap check"},
	)
)

func Register() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, RoomConflicts)
}
