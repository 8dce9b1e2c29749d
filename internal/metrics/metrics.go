package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vietanh2810/eventdesk/internal/repository/dao"
)

var (
	BridgeCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "bridge",
			Name:      "calls_total",
			Help:      "Console process invocations by opcode and outcome.",
		},
		[]string{"opcode", "status"},
	)

	BridgeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "eventdesk",
			Subsystem: "bridge",
			Name:      "duration_seconds",
			Help:      "Wall time of console process invocations.",
			Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 15},
		},
		[]string{"opcode"},
	)

	SettleRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "reconcile",
			Name:      "settle_retries_total",
			Help:      "Store re-reads after a mutation, by outcome.",
		},
		[]string{"outcome"},
	)

	ProjectionRebuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "reconcile",
			Name:      "projection_rebuilds_total",
			Help:      "Projection rebuilds by trigger and outcome.",
		},
		[]string{"trigger", "outcome"},
	)

	FacadeResults = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "eventdesk",
			Subsystem: "facade",
			Name:      "results_total",
			Help:      "Façade action results by action and code.",
		},
		[]string{"action", "code"},
	)
)

var registerOnce sync.Once

// Register adds every collector to the default registry once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(BridgeCalls, BridgeDuration, SettleRetries, ProjectionRebuilds, FacadeResults)
		prometheus.MustRegister(dao.Collectors()...)
	})
}
