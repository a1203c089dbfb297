package observability

import (
	"github.com/aretw0/turing/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Command outcome labels.
const (
	ResultOK    = "ok"
	ResultUsage = "usage"
	ResultError = "error"
)

// Metrics holds the collectors of the engine.
type Metrics struct {
	Steps      prometheus.Counter
	Halts      *prometheus.CounterVec
	StepLimits prometheus.Counter
	Commands   *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Steps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_steps_total",
			Help: "Total number of transitions applied",
		}),
		Halts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turing_halts_total",
			Help: "Total number of halted computations by outcome",
		}, []string{"outcome"}),
		StepLimits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "turing_step_limit_total",
			Help: "Total number of runs stopped by the step ceiling",
		}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "turing_commands_total",
			Help: "Total number of dispatched commands by name and result",
		}, []string{"command", "result"}),
	}
	if reg != nil {
		reg.MustRegister(m.Steps, m.Halts, m.StepLimits, m.Commands)
	}
	return m
}

// Hooks returns lifecycle hooks that feed the step and halt collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStep: func(*domain.StepEvent) {
			m.Steps.Inc()
		},
		OnHalt: func(e *domain.HaltEvent) {
			m.Halts.WithLabelValues(outcomeLabel(e.Status)).Inc()
		},
	}
}

// ObserveCommand counts one dispatched command.
func (m *Metrics) ObserveCommand(name, result string) {
	m.Commands.WithLabelValues(name, result).Inc()
}

// ObserveStepLimit counts one run stopped by the step ceiling.
func (m *Metrics) ObserveStepLimit() {
	m.StepLimits.Inc()
}

func outcomeLabel(s domain.Status) string {
	switch s {
	case domain.StatusAccepting:
		return "accepted"
	case domain.StatusDenying:
		return "denied"
	default:
		return "unknown"
	}
}
