package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	topupsProcessedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "airtime",
			Name:      "topups_processed_total",
			Help:      "Total top-up requests processed.",
		},
		[]string{"provider_name", "outcome"}, // outcome: completed, failed, duplicate
	)

	statusUpdateFailuresCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "airtime",
			Name:      "status_update_failures_total",
			Help:      "Terminal status updates that failed and were swallowed.",
		},
	)
)
