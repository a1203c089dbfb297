package machine_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.ConfigurableMachine = (*machine.Deterministic)(nil)

// incrementer adds one to a binary number; the head starts on the most significant bit.
func incrementer(t *testing.T, input string) *machine.Deterministic {
	t.Helper()
	m := machine.New()

	rules := []domain.Transition{
		domain.NewTransition("S", "0", "0", domain.Right, "S"),
		domain.NewTransition("S", "1", "1", domain.Right, "S"),
		domain.NewTransition("S", "_", "_", domain.Left, "C"),
		domain.NewTransition("C", "1", "0", domain.Left, "C"),
		domain.NewTransition("C", "0", "1", domain.None, "F"),
		domain.NewTransition("C", "_", "1", domain.None, "F"),
	}
	for _, r := range rules {
		ok, err := m.AddTransition(r)
		require.NoError(t, err)
		require.True(t, ok)
	}
	require.NoError(t, m.SetInput(input))
	return m
}

func runToHalt(t *testing.T, m *machine.Deterministic, limit int) int {
	t.Helper()
	steps := 0
	for m.IsRunning() {
		require.Less(t, steps, limit, "machine did not halt")
		require.NoError(t, m.PerformStep())
		steps++
	}
	return steps
}

func TestMachine_NewIsUnbuilt(t *testing.T) {
	m := machine.New()

	assert.True(t, m.IsUnbuilt())
	assert.False(t, m.IsRunning())
	assert.False(t, m.IsAccepting())
	assert.False(t, m.IsDenying())
	assert.Equal(t, domain.StatusModifiable, m.Status())
	assert.Equal(t, domain.State(""), m.CurrentState())
}

func TestMachine_SingleAcceptingStep(t *testing.T) {
	m := machine.New()
	ok, err := m.AddTransition(domain.NewTransition("S", "a", "b", domain.Right, "F"))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = m.AddAcceptingState("F")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, m.SetInput("a"))

	require.NoError(t, m.Build())
	assert.True(t, m.IsRunning())
	assert.Equal(t, domain.State("S"), m.CurrentState())

	require.NoError(t, m.PerformStep())

	assert.True(t, m.IsAccepting())
	content, err := m.TapeContent()
	require.NoError(t, err)
	assert.Equal(t, domain.Word{"b"}, content)

	head, err := m.HeadIndex()
	require.NoError(t, err)
	assert.Equal(t, 1, head)
	assert.Equal(t, 1, m.Steps())
}

func TestMachine_DefaultsDenyWithoutTransitions(t *testing.T) {
	m := machine.New()
	require.NoError(t, m.SetInput("ab"))
	require.NoError(t, m.Build())

	assert.Equal(t, domain.DefaultInitialState, m.CurrentState())

	require.NoError(t, m.PerformStep())
	assert.True(t, m.IsDenying())
	assert.Equal(t, 0, m.Steps())

	content, err := m.TapeContent()
	require.NoError(t, err)
	assert.Equal(t, domain.Word{"a", "b"}, content)

	snap := m.Snapshot()
	assert.Equal(t, []domain.State{domain.DefaultAcceptingState}, snap.Accepting)
	assert.Equal(t, domain.DefaultBlankSymbol, snap.Blank)
}

func TestMachine_EmptyInputUsesBlank(t *testing.T) {
	m := machine.New()
	require.NoError(t, m.SetBlankSymbol("#"))
	_, err := m.AddTransition(domain.NewTransition("S", "#", "1", domain.Left, "F"))
	require.NoError(t, err)
	require.NoError(t, m.Build())

	require.NoError(t, m.PerformStep())

	assert.True(t, m.IsAccepting())
	content, _ := m.TapeContent()
	assert.Equal(t, domain.Word{"1"}, content)
	assert.Equal(t, domain.Word{"#", "1"}, m.Snapshot().Tape)
	assert.Equal(t, -1, m.Snapshot().TapeStart)
	head, _ := m.HeadIndex()
	assert.Equal(t, -1, head)
}

func TestMachine_BinaryIncrement(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "1"},
		{"1011", "1100"},
		{"111", "1000"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m := incrementer(t, tt.input)
			require.NoError(t, m.Build())
			runToHalt(t, m, 100)

			assert.True(t, m.IsAccepting())
			content, err := m.TapeContent()
			require.NoError(t, err)
			assert.Equal(t, tt.want, content.String())
		})
	}
}

func TestMachine_DuplicateConfiguration(t *testing.T) {
	m := machine.New()
	ok, err := m.AddTransition(domain.NewTransition("S", "a", "b", domain.Right, "F"))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.AddTransition(domain.NewTransition("S", "a", "c", domain.Left, "G"))
	require.NoError(t, err)
	assert.False(t, ok)

	snap := m.Snapshot()
	require.Len(t, snap.Transitions, 1)
	assert.Equal(t, domain.Symbol("b"), snap.Transitions[0].Print)
}

func TestMachine_AcceptingStates(t *testing.T) {
	m := machine.New()

	ok, err := m.AddAcceptingState("F")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.AddAcceptingState("F")
	require.NoError(t, err)
	assert.False(t, ok, "duplicate accepting state")

	require.NoError(t, m.SetAcceptingStates("A", "B", "A"))
	assert.Equal(t, []domain.State{"A", "B"}, m.Snapshot().Accepting)
}

func TestMachine_AddInitialStateOnce(t *testing.T) {
	m := machine.New()

	ok, err := m.AddInitialState("q0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = m.AddInitialState("q1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Build())
	assert.Equal(t, domain.State("q0"), m.CurrentState())
}

func TestMachine_Preconditions(t *testing.T) {
	t.Run("Queries Before Build", func(t *testing.T) {
		m := machine.New()

		_, err := m.TapeContent()
		assert.ErrorIs(t, err, domain.ErrPrecondition)
		_, err = m.HeadIndex()
		assert.ErrorIs(t, err, domain.ErrPrecondition)
	})

	t.Run("Step Before Build", func(t *testing.T) {
		m := machine.New()
		err := m.PerformStep()

		var pre *domain.PreconditionError
		require.ErrorAs(t, err, &pre)
		assert.Equal(t, "step", pre.Op)
		assert.Equal(t, domain.StatusModifiable, pre.Status)
	})

	t.Run("Restart Before Build", func(t *testing.T) {
		m := machine.New()
		assert.ErrorIs(t, m.Restart(), domain.ErrPrecondition)
		assert.True(t, m.IsUnbuilt())
	})

	t.Run("Configuration While Running", func(t *testing.T) {
		m := machine.New()
		require.NoError(t, m.SetInput("a"))
		require.NoError(t, m.Build())
		before := m.Snapshot()

		calls := map[string]func() error{
			"add transition": func() error {
				_, err := m.AddTransition(domain.NewTransition("S", "a", "a", domain.None, "F"))
				return err
			},
			"add accepting": func() error {
				_, err := m.AddAcceptingState("G")
				return err
			},
			"set accepting": func() error { return m.SetAcceptingStates("G") },
			"add initial": func() error {
				_, err := m.AddInitialState("G")
				return err
			},
			"set blank": func() error { return m.SetBlankSymbol("#") },
			"set input": func() error { return m.SetInput("zzz") },
			"set word":  func() error { return m.SetInputWord(domain.Word{"z"}) },
			"build":     m.Build,
		}

		for name, call := range calls {
			t.Run(name, func(t *testing.T) {
				assert.ErrorIs(t, call(), domain.ErrPrecondition)
			})
		}

		assert.Equal(t, before, m.Snapshot(), "violations must not mutate the machine")
	})

	t.Run("Step After Halt", func(t *testing.T) {
		m := machine.New()
		require.NoError(t, m.Build())
		require.NoError(t, m.PerformStep())
		require.True(t, m.IsDenying())

		assert.ErrorIs(t, m.PerformStep(), domain.ErrPrecondition)
		assert.True(t, m.IsDenying())
	})
}

func TestMachine_Restart(t *testing.T) {
	m := incrementer(t, "01")
	require.NoError(t, m.Build())
	runToHalt(t, m, 100)
	require.True(t, m.IsAccepting())

	require.NoError(t, m.Restart())

	assert.True(t, m.IsRunning())
	assert.Equal(t, domain.State("S"), m.CurrentState())
	assert.Equal(t, 0, m.Steps())
	content, _ := m.TapeContent()
	assert.Equal(t, domain.Word{"0", "1"}, content)
	head, _ := m.HeadIndex()
	assert.Equal(t, 0, head)

	// Transitions survive the restart.
	runToHalt(t, m, 100)
	assert.True(t, m.IsAccepting())
	content, _ = m.TapeContent()
	assert.Equal(t, "10", content.String())
}

func TestMachine_RestartWhileRunning(t *testing.T) {
	m := incrementer(t, "11")
	require.NoError(t, m.Build())
	require.NoError(t, m.PerformStep())

	require.NoError(t, m.Restart())
	head, _ := m.HeadIndex()
	assert.Equal(t, 0, head)
	assert.True(t, m.IsRunning())
}

func TestMachine_Clear(t *testing.T) {
	states := map[string]func(t *testing.T, m *machine.Deterministic){
		"modifiable": func(t *testing.T, m *machine.Deterministic) {},
		"running": func(t *testing.T, m *machine.Deterministic) {
			require.NoError(t, m.Build())
		},
		"accepting": func(t *testing.T, m *machine.Deterministic) {
			require.NoError(t, m.Build())
			runToHalt(t, m, 100)
		},
		"denying": func(t *testing.T, m *machine.Deterministic) {
			require.NoError(t, m.SetInput("x"))
			require.NoError(t, m.Build())
			runToHalt(t, m, 100)
		},
	}

	for name, prepare := range states {
		t.Run(name, func(t *testing.T) {
			m := incrementer(t, "1")
			require.NoError(t, m.SetBlankSymbol("#"))
			prepare(t, m)

			m.Clear()

			assert.True(t, m.IsUnbuilt())
			snap := m.Snapshot()
			assert.Empty(t, snap.Transitions)
			assert.Empty(t, snap.Accepting)
			assert.Empty(t, snap.Input)
			assert.Empty(t, snap.Initial)
			assert.Equal(t, domain.BlankSymbol("#"), snap.Blank)
			assert.False(t, snap.Built)

			_, err := m.TapeContent()
			assert.ErrorIs(t, err, domain.ErrPrecondition)

			require.NoError(t, m.Build())
			content, err := m.TapeContent()
			require.NoError(t, err)
			assert.Empty(t, content)
			assert.Equal(t, domain.Word{"#"}, m.Snapshot().Tape)
		})
	}
}

func TestMachine_SetInputWord(t *testing.T) {
	m := machine.New()
	word := domain.Word{"ab", "c"}
	require.NoError(t, m.SetInputWord(word))
	word[0] = "zz"

	require.NoError(t, m.Build())
	content, _ := m.TapeContent()
	assert.Equal(t, domain.Word{"ab", "c"}, content)
	assert.Equal(t, domain.Word{"ab", "c"}, m.Input())
}

func TestMachine_Hooks(t *testing.T) {
	var (
		builds []*domain.BuildEvent
		steps  []*domain.StepEvent
		halts  []*domain.HaltEvent
	)
	hooks := domain.LifecycleHooks{
		OnBuild: func(e *domain.BuildEvent) { builds = append(builds, e) },
		OnStep:  func(e *domain.StepEvent) { steps = append(steps, e) },
		OnHalt:  func(e *domain.HaltEvent) { halts = append(halts, e) },
	}

	m := machine.New(machine.WithLifecycleHooks(hooks))
	_, _ = m.AddTransition(domain.NewTransition("S", "a", "b", domain.Right, "F"))
	require.NoError(t, m.SetInput("a"))
	require.NoError(t, m.Build())
	require.NoError(t, m.PerformStep())
	require.NoError(t, m.Restart())

	require.Len(t, builds, 2)
	assert.False(t, builds[0].Restart)
	assert.True(t, builds[1].Restart)
	assert.Equal(t, domain.Word{"a"}, builds[0].Input)

	require.Len(t, steps, 1)
	assert.Equal(t, 1, steps[0].Step)
	assert.Equal(t, 1, steps[0].HeadIndex)

	require.Len(t, halts, 1)
	assert.Equal(t, domain.StatusAccepting, halts[0].Status)
	assert.Equal(t, domain.State("F"), halts[0].State)
	assert.Equal(t, domain.EventHalt, halts[0].Type)
}

func TestMachine_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	m := machine.New(machine.WithLogger(logger))
	require.NoError(t, m.Build())
	require.NoError(t, m.PerformStep())

	assert.Contains(t, buf.String(), "machine running")
	assert.Contains(t, buf.String(), "status=denying")
}

func TestMachine_AcceptingCheckOnlyAfterTransition(t *testing.T) {
	// The initial state is accepting, but acceptance is only decided after a step.
	m := machine.New()
	require.NoError(t, m.SetAcceptingStates("S"))
	require.NoError(t, m.Build())
	assert.True(t, m.IsRunning())

	require.NoError(t, m.PerformStep())
	assert.True(t, m.IsDenying())
}

func TestMachine_TapeContentKeepsInnerBlanks(t *testing.T) {
	m := machine.New()
	require.NoError(t, m.SetInput("_a__b_"))
	require.NoError(t, m.Build())

	content, err := m.TapeContent()
	require.NoError(t, err)
	assert.Equal(t, domain.Word{"a", "_", "_", "b"}, content)

	require.NoError(t, m.PerformStep())
	content, err = m.TapeContent()
	require.NoError(t, err)
	assert.Len(t, content, 4, "halted machines still report their tape")
}
