package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"golang.org/x/term"
)

// ErrInterrupted is returned by reads cut short by a cancellation signal.
var ErrInterrupted = errors.New("interrupted")

// SignalContext is cancelled on SIGINT or SIGTERM and remembers which one arrived.
type SignalContext struct {
	context.Context
	// Cancel releases the signal subscription and cancels the context. Safe to call twice.
	Cancel context.CancelFunc

	caught atomic.Pointer[os.Signal]
}

// NewSignalContext derives a SignalContext from parent.
func NewSignalContext(parent context.Context) *SignalContext {
	ctx, cancel := context.WithCancel(parent)
	incoming := make(chan os.Signal, 1)
	signal.Notify(incoming, os.Interrupt, syscall.SIGTERM)

	var once sync.Once
	sc := &SignalContext{Context: ctx}
	sc.Cancel = func() {
		once.Do(func() {
			signal.Stop(incoming)
			cancel()
		})
	}
	go sc.watch(incoming)
	return sc
}

func (sc *SignalContext) watch(incoming <-chan os.Signal) {
	select {
	case sig := <-incoming:
		sc.caught.Store(&sig)
		sc.Cancel()
	case <-sc.Done():
	}
}

// Signal returns the signal that cancelled the context, or nil.
func (sc *SignalContext) Signal() os.Signal {
	if sig := sc.caught.Load(); sig != nil {
		return *sig
	}
	return nil
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// InterruptibleReader fails with ErrInterrupted once done is closed, even if the
// underlying read already returned data.
type InterruptibleReader struct {
	src  io.Reader
	done <-chan struct{}
}

func NewInterruptibleReader(src io.Reader, done <-chan struct{}) *InterruptibleReader {
	return &InterruptibleReader{src: src, done: done}
}

func (r *InterruptibleReader) Read(p []byte) (int, error) {
	if r.closed() {
		return 0, ErrInterrupted
	}
	n, err := r.src.Read(p)
	if r.closed() {
		return 0, ErrInterrupted
	}
	return n, err
}

func (r *InterruptibleReader) closed() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// HandleExecutionError treats end of input and interruptions as a clean exit.
func HandleExecutionError(err error) error {
	switch {
	case err == nil,
		errors.Is(err, io.EOF),
		errors.Is(err, context.Canceled),
		errors.Is(err, ErrInterrupted):
		return nil
	}
	return err
}
