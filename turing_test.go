package turing_test

import (
	"context"
	"testing"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/program"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ExamplePrograms(t *testing.T) {
	tests := []struct {
		path   string
		status domain.Status
		tape   string
		steps  int
	}{
		{"examples/programs/increment.yaml", domain.StatusAccepting, "1100", 8},
		{"examples/programs/palindrome.yaml", domain.StatusAccepting, "", 0},
		{"examples/programs/busy-beaver.yaml", domain.StatusAccepting, "1111", 6},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			eng, err := turing.Load(tt.path)
			require.NoError(t, err)

			res, err := eng.Run(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.status, res.Status)
			assert.Equal(t, tt.tape, res.Tape.String())
			if tt.steps > 0 {
				assert.Equal(t, tt.steps, res.Steps)
			}
		})
	}
}

func TestEngine_Palindrome(t *testing.T) {
	for input, accepted := range map[string]bool{
		"":      true,
		"a":     true,
		"abba":  true,
		"aba":   true,
		"ab":    false,
		"abbab": false,
	} {
		prog, err := program.LoadFile("examples/programs/palindrome.yaml")
		require.NoError(t, err)
		prog.Input = input

		eng, err := turing.FromProgram(prog)
		require.NoError(t, err)

		res, err := eng.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, accepted, res.Status == domain.StatusAccepting, input)
	}
}

func TestEngine_Runaway(t *testing.T) {
	var observed int
	eng, err := turing.Load("examples/programs/runaway.yaml",
		turing.WithMaxSteps(100),
		turing.WithObserver(func(int, ports.Machine) { observed++ }),
	)
	require.NoError(t, err)
	assert.Equal(t, "runaway", eng.Name)

	res, err := eng.Run(context.Background())
	require.ErrorIs(t, err, runner.ErrStepLimitExceeded)
	assert.Equal(t, 100, res.Steps)
	assert.Equal(t, 100, observed)
	assert.True(t, eng.Machine().IsRunning())
}

func TestEngine_ManualConfiguration(t *testing.T) {
	var halted *domain.HaltEvent
	eng := turing.New(turing.WithLifecycleHooks(domain.LifecycleHooks{
		OnHalt: func(e *domain.HaltEvent) { halted = e },
	}))

	m := eng.Machine()
	_, err := m.AddTransition(domain.NewTransition("S", "x", "y", domain.Right, "F"))
	require.NoError(t, err)
	require.NoError(t, m.SetInput("x"))

	res, err := eng.Step()
	require.NoError(t, err)
	assert.True(t, res.AutoBuilt)
	assert.Equal(t, domain.StatusAccepting, res.Status)
	require.NotNil(t, halted)
	assert.Equal(t, domain.State("F"), halted.State)

	snap := eng.Snapshot()
	assert.Equal(t, 1, snap.Steps)
	assert.Equal(t, "y", res.Tape.String())
}

func TestFromProgram_Invalid(t *testing.T) {
	_, err := turing.FromProgram(&program.Program{Transitions: []string{"nope"}})
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, turing.Version)
}
