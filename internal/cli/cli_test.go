package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/command"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunProgram(t *testing.T) {
	var out bytes.Buffer
	res, err := cli.RunProgram(context.Background(), cli.RunOptions{
		Path: "../../examples/programs/increment.yaml",
		Out:  &out,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusAccepting, res.Status)
	assert.Contains(t, out.String(), `Its output was: "1100".`)
	assert.Contains(t, out.String(), "Steps: 8")
}

func TestRunProgram_InputOverride(t *testing.T) {
	input := "ab"
	var out bytes.Buffer
	res, err := cli.RunProgram(context.Background(), cli.RunOptions{
		Path:  "../../examples/programs/palindrome.yaml",
		Input: &input,
		Out:   &out,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDenying, res.Status)
	assert.Contains(t, out.String(), `did not accept the word "ab"`)
}

func TestRunProgram_Trace(t *testing.T) {
	var out bytes.Buffer
	_, err := cli.RunProgram(context.Background(), cli.RunOptions{
		Path:  "../../examples/programs/busy-beaver.yaml",
		Trace: true,
		Out:   &out,
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 6)
	for i := 0; i < 6; i++ {
		assert.Contains(t, lines[i], "[")
	}
	assert.Contains(t, lines[5], "step 6")
}

func TestRunProgram_StepLimit(t *testing.T) {
	var out bytes.Buffer
	res, err := cli.RunProgram(context.Background(), cli.RunOptions{
		Path:     "../../examples/programs/runaway.yaml",
		MaxSteps: 10,
		Out:      &out,
	})
	require.ErrorIs(t, err, runner.ErrStepLimitExceeded)
	assert.Equal(t, 10, res.Steps)
	assert.Contains(t, out.String(), "possibly an infinite loop")
}

func TestRunProgram_MissingFile(t *testing.T) {
	_, err := cli.RunProgram(context.Background(), cli.RunOptions{
		Path: "does-not-exist.yaml",
		Out:  &bytes.Buffer{},
	})
	assert.Error(t, err)
}

func TestREPL(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		`add (S, 1) -> (S, 1, R) \`,
		`(S, _) -> (F, _, N)`,
		`input "11"`,
		``,
		`fly`,
		`run`,
		`exit`,
		`config`,
	}, "\n"))

	var out bytes.Buffer
	m := machine.New()
	err := cli.REPL(context.Background(), cli.ReplOptions{
		In:         in,
		Out:        &out,
		Dispatcher: command.NewDispatcher(),
		Machine:    m,
	})
	require.NoError(t, err)

	assert.True(t, m.IsAccepting())
	assert.Equal(t, 3, m.Steps())
	assert.Contains(t, out.String(), "2 transitions added")
	assert.Contains(t, out.String(), "Error: ")
	assert.Contains(t, out.String(), `accepted the input word "11"`)
	assert.Contains(t, out.String(), ">>>  1  1 [_]")
	assert.NotContains(t, out.String(), "Current state:")
}

func TestREPL_Interactive(t *testing.T) {
	var out bytes.Buffer
	err := cli.REPL(context.Background(), cli.ReplOptions{
		In:          strings.NewReader("help\n"),
		Out:         &out,
		Dispatcher:  command.NewDispatcher(),
		Interactive: true,
		Version:     "v0.0.1",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "v0.0.1")
	assert.Contains(t, out.String(), "> ")
	assert.Contains(t, out.String(), "Commands")
}

func TestREPL_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := cli.REPL(ctx, cli.ReplOptions{
		In:         strings.NewReader("step\n"),
		Out:        &bytes.Buffer{},
		Dispatcher: command.NewDispatcher(),
	})
	assert.NoError(t, err)
}

func TestInterruptibleReader(t *testing.T) {
	done := make(chan struct{})
	r := cli.NewInterruptibleReader(strings.NewReader("abc"), done)

	buf := make([]byte, 2)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ab", string(buf[:n]))

	close(done)
	_, err = r.Read(buf)
	assert.ErrorIs(t, err, cli.ErrInterrupted)
}

func TestHandleExecutionError(t *testing.T) {
	assert.NoError(t, cli.HandleExecutionError(nil))
	assert.NoError(t, cli.HandleExecutionError(io.EOF))
	assert.NoError(t, cli.HandleExecutionError(fmt.Errorf("read: %w", cli.ErrInterrupted)))
	assert.NoError(t, cli.HandleExecutionError(context.Canceled))

	boom := errors.New("boom")
	assert.ErrorIs(t, cli.HandleExecutionError(boom), boom)
}

func TestSignalContext_CancelWithoutSignal(t *testing.T) {
	sc := cli.NewSignalContext(context.Background())
	sc.Cancel()
	sc.Cancel()

	<-sc.Done()
	assert.ErrorIs(t, sc.Err(), context.Canceled)
	assert.Nil(t, sc.Signal())
}
