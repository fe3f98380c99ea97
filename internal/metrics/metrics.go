package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ecorider_assignment_transitions_total",
		Help: "Total number of committed assignment status transitions.",
	},
		[]string{"to"},
	)

	VerificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecorider_verification_failures_total",
		Help: "Total number of rejected pickup/delivery verification codes.",
	})

	TransitionConflictsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecorider_transition_conflicts_total",
		Help: "Transitions refused because the assignment was not in the expected prior status.",
	})

	DeliveriesCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ecorider_deliveries_completed_total",
		Help: "Total number of deliveries confirmed with a valid code.",
	})
)
