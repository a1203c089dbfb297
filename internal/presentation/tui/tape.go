package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/machine"
	"github.com/muesli/termenv"
)

// RenderTape draws every visited cell of snap's tape on one line.
// The scanned cell is bracketed and, when colours are available, highlighted.
func RenderTape(out *termenv.Output, snap machine.Snapshot) string {
	if !snap.Built {
		return "(not built)"
	}

	head := snap.HeadIndex - snap.TapeStart
	var sb strings.Builder
	for i, sym := range snap.Tape {
		if i == head {
			sb.WriteString(out.String("[" + string(sym) + "]").Bold().Foreground(out.Color("#f472b6")).String())
			continue
		}
		fmt.Fprintf(&sb, " %s ", sym)
	}
	return sb.String()
}

// RenderState summarizes the control unit next to the tape.
func RenderState(out *termenv.Output, snap machine.Snapshot) string {
	return fmt.Sprintf("%s  %s  step %d",
		out.String(string(snap.State)).Bold(),
		out.String(string(snap.Status)).Faint(),
		snap.Steps)
}
