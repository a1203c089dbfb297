package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	VisitedStates []domain.State
	CurrentState  domain.State
}

// OverlayFromSnapshot highlights the current state of a built machine, or returns nil.
func OverlayFromSnapshot(snap machine.Snapshot) *GraphOverlay {
	if !snap.Built {
		return nil
	}
	return &GraphOverlay{CurrentState: snap.State}
}

// GenerateMermaid produces a Mermaid flowchart of a machine's transition table.
// States are nodes, transitions are edges labelled "scanned / print, move".
// The initial state is drawn as a circle and accepting states as double circles.
func GenerateMermaid(snap machine.Snapshot, overlay *GraphOverlay) string {
	initial := snap.Initial
	if initial == "" {
		initial = domain.DefaultInitialState
	}
	accepting := make(map[domain.State]bool)
	for _, s := range snap.Accepting {
		accepting[s] = true
	}
	if len(accepting) == 0 {
		accepting[domain.DefaultAcceptingState] = true
	}

	// Declare every state once, in order of first appearance.
	states := []domain.State{initial}
	seen := map[domain.State]bool{initial: true}
	for _, t := range snap.Transitions {
		for _, s := range []domain.State{t.Current, t.Next} {
			if !seen[s] {
				seen[s] = true
				states = append(states, s)
			}
		}
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, s := range states {
		opener, closer := "[", "]"
		switch {
		case accepting[s]:
			opener, closer = "(((", ")))" // Double circle
		case s == initial:
			opener, closer = "((", "))" // Circle
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", sanitizeMermaidID(s), opener, escapeLabel(string(s)), closer)
	}

	for _, t := range snap.Transitions {
		label := fmt.Sprintf("%s / %s, %s", t.Scanned, t.Print, t.Move.Short())
		fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n",
			sanitizeMermaidID(t.Current), escapeLabel(label), sanitizeMermaidID(t.Next))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			id := sanitizeMermaidID(s)
			if !visited[id] && id != "" {
				visited[id] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", id)
			}
		}

		if overlay.CurrentState != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.CurrentState))
		}
	}

	return sb.String()
}

// sanitizeMermaidID keeps letters, digits and underscores; state names may contain anything else.
func sanitizeMermaidID(s domain.State) string {
	var sb strings.Builder
	sb.WriteString("s_")
	for _, r := range string(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "_%x_", r)
		}
	}
	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "#quot;")
}
