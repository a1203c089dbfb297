package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <program.yaml>",
	Short: "Run a program until the machine halts",
	Long: `Loads a YAML program and runs it to completion, printing the outcome.
Exits with status 2 when the step ceiling stops a machine that is still running.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger := mustLogger(cmd)
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		trace, _ := cmd.Flags().GetBool("trace")
		noColor, _ := cmd.Flags().GetBool("no-color")

		opts := cli.RunOptions{
			Path:     args[0],
			MaxSteps: maxSteps,
			Trace:    trace,
			Out:      os.Stdout,
			Color:    !noColor && cli.IsTerminal(os.Stdout),
			Hooks:    observability.LogHooks(logger),
			Logger:   logger,
		}
		if cmd.Flags().Changed("input") {
			input, _ := cmd.Flags().GetString("input")
			opts.Input = &input
		}

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		_, err := cli.RunProgram(ctx, opts)
		switch {
		case errors.Is(err, runner.ErrStepLimitExceeded):
			os.Exit(2)
		case cli.HandleExecutionError(err) != nil:
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		case ctx.Signal() != nil:
			fmt.Printf("\n>>> Interrupted (%v).\n", ctx.Signal())
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("input", "i", "", "Input word, overriding the one in the program")
	runCmd.Flags().Int("max-steps", runner.DefaultMaxSteps, "Step ceiling before the run is interrupted")
	runCmd.Flags().BoolP("trace", "t", false, "Print the tape after every step")
	runCmd.Flags().Bool("no-color", false, "Disable colours")
}
