package observability

import (
	"context"
	"strconv"

	"github.com/aretw0/slidekit/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by the runtime hooks.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Signals     *prometheus.CounterVec
	InFlight    prometheus.Gauge
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidekit_transitions_total",
				Help: "Completed slide transitions by destination slide and style",
			},
			[]string{"to", "sync"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "slidekit_transition_duration_seconds",
				Help:    "Time from the start of a transition to its last completion signal",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"sync"},
		),
		Signals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "slidekit_completion_signals_total",
				Help: "Completion signals by outcome (accepted, stale, forced)",
			},
			[]string{"outcome"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "slidekit_transition_in_flight",
				Help: "1 while a transition is in flight",
			},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Duration, m.Signals, m.InFlight)
	}
	return m
}

// Hooks returns lifecycle hooks recording into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransitionStart: func(ctx context.Context, e *domain.TransitionEvent) {
			m.InFlight.Set(1)
		},
		OnTransitionEnd: func(ctx context.Context, e *domain.TransitionEvent) {
			sync := strconv.FormatBool(e.Sync)
			m.InFlight.Set(0)
			m.Transitions.WithLabelValues(e.ToID, sync).Inc()
			m.Duration.WithLabelValues(sync).Observe(e.Elapsed.Seconds())
		},
		OnSignal: func(ctx context.Context, e *domain.SignalEvent) {
			m.Signals.WithLabelValues(outcome(e)).Inc()
		},
	}
}

func outcome(e *domain.SignalEvent) string {
	switch {
	case e.Stale:
		return "stale"
	case e.Forced:
		return "forced"
	}
	return "accepted"
}
