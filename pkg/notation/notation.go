// Package notation reads and writes the textual forms used by humans to describe a
// machine: transitions such as "(S, a) -> (F, b, R)", state lists and words.
package notation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
)

// transitionPattern matches "(state, symbol) -> (state, symbol, move)".
// Components may not contain commas, parentheses or whitespace.
var transitionPattern = regexp.MustCompile(
	`^\(\s*([^\s,()]+)\s*,\s*([^\s,()]+)\s*\)\s*-+>\s*\(\s*([^\s,()]+)\s*,\s*([^\s,()]+)\s*,\s*([^\s,()]+)\s*\)$`,
)

var stateSeparator = regexp.MustCompile(`[\s,]+`)

// SyntaxError reports text that does not follow the notation.
type SyntaxError struct {
	Text   string
	Reason string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s in %q: %v", e.Reason, e.Text, e.Err)
	}
	return fmt.Sprintf("%s in %q", e.Reason, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return domain.ErrInvalidArgument
}

// ParseTransition parses "(current, scanned) -> (next, print, move)".
func ParseTransition(text string) (domain.Transition, error) {
	clean := strings.TrimSpace(text)
	parts := transitionPattern.FindStringSubmatch(clean)
	if parts == nil {
		return domain.Transition{}, &SyntaxError{
			Text:   text,
			Reason: "expected (state, symbol) -> (state, symbol, move)",
		}
	}

	move, err := domain.ParseTapeMove(parts[5])
	if err != nil {
		return domain.Transition{}, &SyntaxError{Text: text, Reason: "bad head motion", Err: err}
	}

	return domain.NewTransition(
		domain.State(parts[1]),
		domain.Symbol(parts[2]),
		domain.Symbol(parts[4]),
		move,
		domain.State(parts[3]),
	), nil
}

// FormatTransition renders t in the notation accepted by ParseTransition.
func FormatTransition(t domain.Transition) string {
	return fmt.Sprintf("(%s, %s) -> (%s, %s, %s)", t.Current, t.Scanned, t.Next, t.Print, t.Move.Short())
}

// ParseStates splits a list of state names separated by commas and/or whitespace.
func ParseStates(text string) ([]domain.State, error) {
	var states []domain.State
	for _, name := range stateSeparator.Split(strings.TrimSpace(text), -1) {
		if name != "" {
			states = append(states, domain.State(name))
		}
	}
	if len(states) == 0 {
		return nil, &SyntaxError{Text: text, Reason: "no states given"}
	}
	return states, nil
}

// FormatWord joins the symbols of word with sep. The separator also appears as prefix
// and suffix, so FormatWord(w, " | ") draws cell borders.
func FormatWord(word domain.Word, sep string) string {
	var sb strings.Builder
	for _, s := range word {
		sb.WriteString(sep)
		sb.WriteString(string(s))
	}
	sb.WriteString(sep)
	return sb.String()
}
