package machine

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// Option defines a functional option for configuring a machine.
type Option func(*Deterministic)

// WithLogger sets a custom structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Deterministic) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(m *Deterministic) {
		m.hooks = hooks
	}
}
