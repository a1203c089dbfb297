package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/turing/pkg/command"
	"github.com/muesli/termenv"
)

// Printer writes command replies to a terminal.
type Printer struct {
	out    *termenv.Output
	render func(string) (string, error)
}

// NewPrinter creates a printer writing to out.
func NewPrinter(out *termenv.Output, render func(string) (string, error)) *Printer {
	return &Printer{out: out, render: render}
}

// Output exposes the underlying terminal output.
func (p *Printer) Output() *termenv.Output {
	return p.out
}

// Reply prints the title, the notices and the body of r.
func (p *Printer) Reply(r command.Reply) {
	fmt.Fprintln(p.out, p.out.String(r.Title).Bold().Foreground(p.out.Color("#818cf8")))
	for _, n := range r.Notices {
		fmt.Fprintln(p.out, p.out.String("! "+n).Foreground(p.out.Color("#fb7185")))
	}

	body := r.Body
	if r.Markdown && p.render != nil {
		if rendered, err := p.render(body); err == nil {
			body = strings.Trim(rendered, "\n")
		}
	}
	if body != "" {
		fmt.Fprintln(p.out, body)
	}
}

// Error prints err the way the REPL reports rejected commands.
func (p *Printer) Error(err error) {
	fmt.Fprintln(p.out, p.out.String("Error: "+err.Error()).Foreground(p.out.Color("#fb7185")))
}

// System prints a standardized system message.
func (p *Printer) System(format string, args ...any) {
	fmt.Fprintf(p.out, ">>> %s\n", fmt.Sprintf(format, args...))
}
