package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// forwardTotal counts page writes forwarded to the sync store by result
	forwardTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favsync_forward_total",
		Help: "Page favorites writes forwarded to the sync store by result",
	}, []string{"result"})

	// mergeTotal counts merges into a page store by outcome
	mergeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favsync_merge_total",
		Help: "Merges into a page store by outcome",
	}, []string{"outcome"})

	// mergeAddedItems tracks how many favorites a merge appended
	mergeAddedItems = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "favsync_merge_added_items",
		Help:    "Number of favorites appended by a merge that found new entries",
		Buckets: []float64{1, 2, 5, 10, 50, 100, 500},
	})

	// fanOutDeliveries counts syncFromStorage messages by result
	fanOutDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favsync_fanout_deliveries_total",
		Help: "syncFromStorage messages sent to open pages by result",
	}, []string{"result"})

	// drainTotal counts staging drains by outcome
	drainTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favsync_drain_total",
		Help: "Staging drains by outcome",
	}, []string{"outcome"})

	// uploadTotal counts upload-on-demand requests by result
	uploadTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favsync_upload_total",
		Help: "Upload-on-demand requests by result",
	}, []string{"result"})
)
