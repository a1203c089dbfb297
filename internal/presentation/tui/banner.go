package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

var bannerLines = []struct {
	text  string
	color string
}{
	{" _              _            ", "#818cf8"},
	{"| |_ _  _ _ _  (_)_ _  __ _  ", "#a78bfa"},
	{"|  _| || | '_| | | ' \\/ _` | ", "#c084fc"},
	{" \\__|\\_,_|_|   |_|_||_\\__, | ", "#e879f9"},
	{"                      |___/  ", "#f472b6"},
}

// PrintBanner writes the ASCII art banner followed by the version.
func PrintBanner(out *termenv.Output, version string) {
	fmt.Fprintln(out)
	for _, l := range bannerLines {
		fmt.Fprintln(out, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(out, out.String("  deterministic Turing machines "+strings.TrimSpace(version)).Faint())
	fmt.Fprintln(out)
}

// NewOutput wraps w, dropping colours unless color is set.
func NewOutput(w io.Writer, color bool) *termenv.Output {
	if !color {
		return termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return termenv.NewOutput(w)
}
