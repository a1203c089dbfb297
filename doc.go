/*
Package turing is a deterministic single-tape Turing machine engine for teaching,
experimentation and automation.

A machine is configured with transitions, accepting states, an initial state, a blank
symbol and an input word. Building it freezes the configuration and writes the input to
an unbounded two-way tape; every step then applies exactly one transition until the
machine accepts (it entered an accepting state) or denies (no transition matched).

# Architecture

The core lives in pkg/domain (values), pkg/tape and pkg/machine. The runner in
pkg/runner drives a machine with a step ceiling, since a machine never bounds its own
computation. Programs (pkg/program) describe a machine as YAML, and the command
vocabulary in pkg/command lets a person or an agent build machines interactively over
the REPL, HTTP (pkg/adapters/http) or MCP (pkg/adapters/mcp).

# Usage

	eng, err := turing.Load("examples/increment.yaml", turing.WithMaxSteps(1000))
	if err != nil {
		log.Fatal(err)
	}

	res, err := eng.Run(ctx)
	if errors.Is(err, runner.ErrStepLimitExceeded) {
		log.Println("possible infinite loop")
	}
	fmt.Println(res.Status, res.Tape)
*/
package turing
