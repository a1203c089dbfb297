package graph

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func incrementer(t *testing.T) *machine.Deterministic {
	t.Helper()
	m := machine.New()
	for _, tr := range []domain.Transition{
		domain.NewTransition("S", "1", "1", domain.Right, "S"),
		domain.NewTransition("S", "_", "_", domain.Left, "C"),
		domain.NewTransition("C", "1", "0", domain.Left, "C"),
		domain.NewTransition("C", "0", "1", domain.None, "F"),
	} {
		_, err := m.AddTransition(tr)
		require.NoError(t, err)
	}
	return m
}

func TestGenerateMermaid(t *testing.T) {
	got := GenerateMermaid(incrementer(t).Snapshot(), nil)

	assert.Contains(t, got, "graph LR\n")
	assert.Contains(t, got, `s_S(("S"))`)
	assert.Contains(t, got, `s_C["C"]`)
	assert.Contains(t, got, `s_F((("F")))`)
	assert.Contains(t, got, `s_S -- "_ / _, L" --> s_C`)
	assert.Contains(t, got, `s_C -- "0 / 1, N" --> s_F`)
	assert.NotContains(t, got, "classDef")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	m := incrementer(t)
	require.NoError(t, m.SetInput("1"))
	require.NoError(t, m.Build())
	require.NoError(t, m.PerformStep())

	overlay := OverlayFromSnapshot(m.Snapshot())
	require.NotNil(t, overlay)
	overlay.VisitedStates = []domain.State{"S", "S"}

	got := GenerateMermaid(m.Snapshot(), overlay)
	assert.Contains(t, got, "class s_S visited;")
	assert.Contains(t, got, "class s_S current;")
	assert.Equal(t, 1, countOf(got, "class s_S visited;"))
}

func TestOverlayFromSnapshot_Unbuilt(t *testing.T) {
	assert.Nil(t, OverlayFromSnapshot(machine.New().Snapshot()))
}

func TestSanitizeMermaidID(t *testing.T) {
	assert.Equal(t, "s_q0", sanitizeMermaidID("q0"))
	assert.Equal(t, "s_a_2d_b", sanitizeMermaidID("a-b"))
}

func countOf(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
