package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	projectsLevelListItems = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "projects",
		Subsystem: "level_list",
		Name:      "items",
		Help:      "Number of projects per computed level list broken down by scope.",
		Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
	}, []string{"scope"})

	projectsLevelListDepth = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "projects",
		Subsystem: "level_list",
		Name:      "max_level",
		Help:      "Deepest level seen in the last computed level list broken down by scope.",
	}, []string{"scope"})

	projectsMembersAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "projects",
		Subsystem: "members",
		Name:      "added_total",
		Help:      "Total number of membership writes broken down by result.",
	}, []string{"result"})
)

func recordLevelList(scope string, items, maxLevel int) {
	if scope == "" {
		scope = "all"
	}
	projectsLevelListItems.WithLabelValues(scope).Observe(float64(items))
	projectsLevelListDepth.WithLabelValues(scope).Set(float64(maxLevel))
}

func recordMemberAdded(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	projectsMembersAdded.WithLabelValues(result).Inc()
}
