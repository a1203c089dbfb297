package tui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without colour it falls back to the plain notty style.
func NewRenderer(color bool) func(string) (string, error) {
	style := glamour.WithStandardStyle(styles.NoTTYStyle)
	if color {
		style = glamour.WithAutoStyle() // Automatically detect light/dark background
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return r.Render
}
