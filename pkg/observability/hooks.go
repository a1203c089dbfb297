package observability

import (
	"log/slog"

	"github.com/aretw0/turing/pkg/domain"
)

// LogHooks returns hooks that write an audit trail of the computation to logger.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnBuild: func(e *domain.BuildEvent) {
			logger.Info("machine built",
				"initial", e.Initial,
				"input", e.Input.String(),
				"restart", e.Restart,
			)
		},
		OnStep: func(e *domain.StepEvent) {
			logger.Debug("transition applied",
				"step", e.Step,
				"from", e.Transition.Current,
				"scanned", e.Transition.Scanned,
				"print", e.Transition.Print,
				"move", e.Transition.Move.Short(),
				"to", e.Transition.Next,
				"head", e.HeadIndex,
			)
		},
		OnHalt: func(e *domain.HaltEvent) {
			logger.Info("machine halted",
				"status", e.Status,
				"state", e.State,
				"scanned", e.Scanned,
				"steps", e.Steps,
			)
		},
	}
}

// ComposeHooks fans every event out to all hook sets, in order.
func ComposeHooks(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks
	for _, h := range sets {
		out.OnBuild = chain(out.OnBuild, h.OnBuild)
		out.OnStep = chain(out.OnStep, h.OnStep)
		out.OnHalt = chain(out.OnHalt, h.OnHalt)
	}
	return out
}

func chain[E any](first, next func(E)) func(E) {
	switch {
	case first == nil:
		return next
	case next == nil:
		return first
	}
	return func(e E) {
		first(e)
		next(e)
	}
}
