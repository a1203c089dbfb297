package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/command"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Configure and run a machine interactively",
	Long: `Starts an interactive session reading one command per line, e.g.
"add (S, 0) -> (S, 1, R)", "input 0101", "step" or "run". Type "help" for the list.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := mustLogger(cmd)
		dir, _ := cmd.Flags().GetString("programs")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")

		seed, err := loadPrograms(dir)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}

		dispatcher := command.NewDispatcher(
			command.WithStore(memory.NewStore(seed...)),
			command.WithMaxSteps(maxSteps),
			command.WithLogger(logger),
		)
		m := machine.New(
			machine.WithLogger(logger),
			machine.WithLifecycleHooks(observability.LogHooks(logger)),
		)

		interactive := cli.IsTerminal(os.Stdin) && cli.IsTerminal(os.Stdout)
		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Cancel()

		err = cli.REPL(ctx, cli.ReplOptions{
			In:          os.Stdin,
			Out:         os.Stdout,
			Dispatcher:  dispatcher,
			Machine:     m,
			Interactive: interactive,
			Color:       interactive,
			Version:     turing.Version,
			Logger:      logger,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().String("programs", "", "Directory of YAML programs available to load")
	replCmd.Flags().Int("max-steps", runner.DefaultMaxSteps, "Default step ceiling of the run command")

	// The REPL is the default when no command is given.
	rootCmd.Run = replCmd.Run
	rootCmd.Flags().AddFlagSet(replCmd.Flags())
}
