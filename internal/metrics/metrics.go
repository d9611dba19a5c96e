// Package metrics exposes wizard lifecycle counters to prometheus.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/kosuke/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the wizard counters and the registry they live in.
type Metrics struct {
	Registry *prometheus.Registry

	StepsEntered   *prometheus.CounterVec
	StepsCompleted *prometheus.CounterVec
	StepsAborted   *prometheus.CounterVec
	PersistErrors  *prometheus.CounterVec
}

// New creates the counters on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		StepsEntered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kosuke_step_enter_total",
			Help: "Number of times each onboarding step was entered.",
		}, []string{"step"}),
		StepsCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kosuke_step_complete_total",
			Help: "Number of completed onboarding steps.",
		}, []string{"step"}),
		StepsAborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kosuke_step_abort_total",
			Help: "Number of aborted onboarding steps.",
		}, []string{"step"}),
		PersistErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "kosuke_persist_errors_total",
			Help: "Failed progress store operations.",
		}, []string{"op"}),
	}
	m.Registry.MustRegister(m.StepsEntered, m.StepsCompleted, m.StepsAborted, m.PersistErrors)
	return m
}

// Hooks returns lifecycle hooks that record every event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStepEnter: func(_ context.Context, e *domain.StepEvent) {
			m.StepsEntered.WithLabelValues(string(e.StepID)).Inc()
		},
		OnStepComplete: func(_ context.Context, e *domain.StepEvent) {
			m.StepsCompleted.WithLabelValues(string(e.StepID)).Inc()
		},
		OnStepAbort: func(_ context.Context, e *domain.StepEvent) {
			m.StepsAborted.WithLabelValues(string(e.StepID)).Inc()
		},
		OnPersistError: func(_ context.Context, e *domain.PersistEvent) {
			m.PersistErrors.WithLabelValues(e.Op).Inc()
		},
	}
}

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
