// Package metrics provides the Prometheus instruments for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every engine-level counter.
type Metrics struct {
	ValidationsTotal      *prometheus.CounterVec
	ViolationsTotal       *prometheus.CounterVec
	VersionsAppendedTotal *prometheus.CounterVec
	ApprovalsTotal        *prometheus.CounterVec
	RollbacksTotal        prometheus.Counter
}

// New creates and registers all counters on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ValidationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "materialhub_validations_total",
				Help: "Validation calls by platform, slot and outcome.",
			},
			[]string{"platform", "slot", "outcome"},
		),
		ViolationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "materialhub_violations_total",
				Help: "Violations reported in rejected verdicts, by code.",
			},
			[]string{"code"},
		),
		VersionsAppendedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "materialhub_versions_appended_total",
				Help: "Accepted uploads appended to slot histories.",
			},
			[]string{"platform"},
		),
		ApprovalsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "materialhub_approvals_total",
				Help: "Review decisions by outcome.",
			},
			[]string{"decision"},
		),
		RollbacksTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "materialhub_rollbacks_total",
				Help: "Current-pointer rollbacks.",
			},
		),
	}
}
