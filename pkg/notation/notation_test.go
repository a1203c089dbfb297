package notation_test

import (
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/notation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransition(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.Transition
	}{
		{
			name: "Compact",
			text: "(S,a)->(F,b,R)",
			want: domain.NewTransition("S", "a", "b", domain.Right, "F"),
		},
		{
			name: "Spaced",
			text: "  ( q0 , 1 )  ->  ( q1 , _ , left )  ",
			want: domain.NewTransition("q0", "1", "_", domain.Left, "q1"),
		},
		{
			name: "Long Arrow And Zero Move",
			text: "(q0, #) --> (halt, #, 0)",
			want: domain.NewTransition("q0", "#", "#", domain.None, "halt"),
		},
		{
			name: "Multi Rune Names",
			text: "(carry, 10) -> (done, 01, N)",
			want: domain.NewTransition("carry", "10", "01", domain.None, "done"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := notation.ParseTransition(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTransition_Errors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"Empty", ""},
		{"Missing Arrow", "(S, a) (F, b, R)"},
		{"Missing Move", "(S, a) -> (F, b)"},
		{"Extra Component", "(S, a, x) -> (F, b, R)"},
		{"Unbalanced", "(S, a -> (F, b, R)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := notation.ParseTransition(tt.text)
			require.Error(t, err)

			var syntaxErr *notation.SyntaxError
			require.ErrorAs(t, err, &syntaxErr)
			assert.Equal(t, tt.text, syntaxErr.Text)
			assert.ErrorIs(t, err, domain.ErrInvalidArgument)
		})
	}
}

func TestParseTransition_BadMove(t *testing.T) {
	_, err := notation.ParseTransition("(S, a) -> (F, b, UP)")
	require.Error(t, err)

	var moveErr *domain.InvalidMoveError
	require.ErrorAs(t, err, &moveErr)
	assert.Equal(t, "UP", moveErr.Token)
}

func TestFormatTransition_RoundTrip(t *testing.T) {
	tr := domain.NewTransition("q0", "1", "0", domain.Left, "q1")
	text := notation.FormatTransition(tr)
	assert.Equal(t, "(q0, 1) -> (q1, 0, L)", text)

	parsed, err := notation.ParseTransition(text)
	require.NoError(t, err)
	assert.Equal(t, tr, parsed)
}

func TestParseStates(t *testing.T) {
	states, err := notation.ParseStates(" F, G  H,,I ")
	require.NoError(t, err)
	assert.Equal(t, []domain.State{"F", "G", "H", "I"}, states)

	_, err = notation.ParseStates(" , ")
	assert.Error(t, err)
}

func TestFormatWord(t *testing.T) {
	word := domain.Word{"a", "b", "c"}

	assert.Equal(t, "abc", notation.FormatWord(word, ""))
	assert.Equal(t, " | a | b | c | ", notation.FormatWord(word, " | "))
	assert.Equal(t, "", notation.FormatWord(nil, ""))
}
