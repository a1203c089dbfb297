package observability_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeOnce(t *testing.T, hooks domain.LifecycleHooks) *machine.Deterministic {
	t.Helper()
	m := machine.New(machine.WithLifecycleHooks(hooks))
	_, err := m.AddTransition(domain.NewTransition("S", "a", "b", domain.Right, "F"))
	require.NoError(t, err)
	require.NoError(t, m.SetInput("a"))
	require.NoError(t, m.Build())
	require.NoError(t, m.PerformStep())
	require.True(t, m.IsAccepting())
	return m
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewPedanticRegistry()
	metrics := observability.NewMetrics(reg)

	writeOnce(t, metrics.Hooks())

	denied := machine.New(machine.WithLifecycleHooks(metrics.Hooks()))
	require.NoError(t, denied.Build())
	require.NoError(t, denied.PerformStep())

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Steps))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Halts.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Halts.WithLabelValues("denied")))

	count, err := testutil.GatherAndCount(reg, "turing_halts_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestMetrics_Commands(t *testing.T) {
	metrics := observability.NewMetrics(nil)

	metrics.ObserveCommand("step", observability.ResultOK)
	metrics.ObserveCommand("step", observability.ResultOK)
	metrics.ObserveCommand("add", observability.ResultUsage)
	metrics.ObserveStepLimit()

	assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Commands.WithLabelValues("step", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Commands.WithLabelValues("add", "usage")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.StepLimits))
}

func TestMetrics_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	metrics.ObserveStepLimit()

	expected := `
# HELP turing_step_limit_total Total number of runs stopped by the step ceiling
# TYPE turing_step_limit_total counter
turing_step_limit_total 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "turing_step_limit_total"))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	writeOnce(t, observability.LogHooks(logger))

	out := buf.String()
	assert.Contains(t, out, "machine built")
	assert.Contains(t, out, "transition applied")
	assert.Contains(t, out, "move=R")
	assert.Contains(t, out, "status=accepting")
}

func TestComposeHooks(t *testing.T) {
	var order []string
	first := domain.LifecycleHooks{
		OnStep: func(*domain.StepEvent) { order = append(order, "first-step") },
	}
	second := domain.LifecycleHooks{
		OnStep: func(*domain.StepEvent) { order = append(order, "second-step") },
		OnHalt: func(*domain.HaltEvent) { order = append(order, "second-halt") },
	}

	writeOnce(t, observability.ComposeHooks(first, domain.LifecycleHooks{}, second))

	assert.Equal(t, []string{"first-step", "second-step", "second-halt"}, order)
}
