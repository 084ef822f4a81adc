package provider

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var providerRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "airtime",
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of HTTP requests to the airtime provider.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"provider_name"},
)
