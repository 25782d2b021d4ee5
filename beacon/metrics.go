package beacon

import "github.com/prometheus/client_golang/prometheus"

var (
	fetchLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tlock",
			Subsystem: "beacon",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of beacon network HTTP calls made by the timelock client.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op", "outcome"})

	fetchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tlock",
			Subsystem: "beacon",
			Name:      "fetch_total",
			Help:      "Count of beacon network HTTP calls made by the timelock client.",
		}, []string{"op", "outcome"})

	rateLimited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tlock",
			Subsystem: "beacon",
			Name:      "rate_limited_total",
			Help:      "Count of beacon network calls rejected by the local rate limiter before being sent.",
		}, []string{"op"})
)

func init() {
	prometheus.MustRegister(fetchLatency, fetchTotal, rateLimited)
}
