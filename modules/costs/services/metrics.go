package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	userFilterRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "costs",
		Subsystem: "user_filter",
		Name:      "requests_total",
		Help:      "Total number of user filter value listings broken down by result.",
	}, []string{"result"})

	userFilterValues = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "costs",
		Subsystem: "user_filter",
		Name:      "values",
		Help:      "Number of selectable users per listing.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 6),
	})
)

func recordUserFilter(err error, values int) {
	if err != nil {
		userFilterRequests.WithLabelValues("error").Inc()
		return
	}
	userFilterRequests.WithLabelValues("ok").Inc()
	userFilterValues.Observe(float64(values))
}
