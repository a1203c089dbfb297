package command

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/notation"
	"github.com/aretw0/turing/pkg/ports"
)

// TerminationMessage describes a halted computation. It is empty while m has not halted.
func TerminationMessage(m ports.Machine) string {
	input := notation.FormatWord(m.Input(), "")
	switch {
	case m.IsAccepting():
		tape, _ := m.TapeContent()
		return fmt.Sprintf("The Turing machine accepted the input word %q.\nIts output was: %q.",
			input, notation.FormatWord(tape, ""))
	case m.IsDenying():
		return fmt.Sprintf("The Turing machine terminated and did not accept the word %q.", input)
	default:
		return ""
	}
}

// FormatTape draws the tape with cell borders, or "(empty)" for a blank tape.
func FormatTape(word domain.Word) string {
	if len(word) == 0 {
		return "(empty)"
	}
	return strings.TrimSpace(notation.FormatWord(word, " | "))
}

// configuration renders the runtime view of a built machine.
func configuration(m *machine.Deterministic) string {
	tape, _ := m.TapeContent()
	head, _ := m.HeadIndex()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Tape content: %s\n", FormatTape(tape))
	fmt.Fprintf(&sb, "Head index: %d\n", head)
	fmt.Fprintf(&sb, "Current state: %s\n", m.CurrentState())
	fmt.Fprintf(&sb, "Status: %s\n", m.Status())
	fmt.Fprintf(&sb, "Steps: %d", m.Steps())
	return sb.String()
}

// Describe renders the configuration part of a snapshot, marking defaults.
func Describe(snap machine.Snapshot) string {
	var sb strings.Builder

	initial := string(snap.Initial)
	if initial == "" {
		initial = string(domain.DefaultInitialState) + " (default)"
	}
	accepting := string(domain.DefaultAcceptingState) + " (default)"
	if len(snap.Accepting) > 0 {
		names := make([]string, len(snap.Accepting))
		for i, s := range snap.Accepting {
			names[i] = string(s)
		}
		accepting = strings.Join(names, ", ")
	}
	blank := string(snap.Blank)
	if blank == "" {
		blank = string(domain.DefaultBlankSymbol) + " (default)"
	}

	fmt.Fprintf(&sb, "Initial state: %s\n", initial)
	fmt.Fprintf(&sb, "Accepting states: %s\n", accepting)
	fmt.Fprintf(&sb, "Blank symbol: %s\n", blank)
	fmt.Fprintf(&sb, "Input: %q\n", snap.Input.String())
	if len(snap.Transitions) == 0 {
		sb.WriteString("Transitions: none")
		return sb.String()
	}
	sb.WriteString("Transitions:")
	for _, t := range snap.Transitions {
		sb.WriteString("\n  ")
		sb.WriteString(notation.FormatTransition(t))
	}
	return sb.String()
}

// unquote strips one pair of surrounding double quotes, which lets users pass
// whitespace as an argument.
func unquote(arg string) string {
	if len(arg) >= 2 && strings.HasPrefix(arg, `"`) && strings.HasSuffix(arg, `"`) {
		return arg[1 : len(arg)-1]
	}
	return arg
}
