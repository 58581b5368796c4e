package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favsync_http_requests_total",
		Help: "Daemon API requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "favsync_http_request_duration_seconds",
		Help:    "Daemon API request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	openSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "favsync_open_page_sockets",
		Help: "Pages currently bound to a websocket connection.",
	})

	droppedSocketEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "favsync_page_socket_dropped_events_total",
		Help: "Events not sent to a websocket page because its queue was full.",
	})
)
