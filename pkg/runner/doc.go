/*
Package runner implements the caller-driven execution loop for Turing machines.

A machine never bounds its own computation: stepping a non-halting transition table
goes on forever. The runner is the collaborator that drives PerformStep in a loop,
imposes a step ceiling and honours context cancellation between steps.

# Usage

	r := runner.NewRunner(
		runner.WithMaxSteps(5000),
		runner.WithLogger(logger),
	)

	res, err := r.Run(ctx, m)
	if errors.Is(err, runner.ErrStepLimitExceeded) {
		// possible infinite loop, res holds the partial computation
	}
*/
package runner
