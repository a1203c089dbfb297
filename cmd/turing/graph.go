package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <program.yaml>",
	Short: "Export the state diagram of a program",
	Long:  `Outputs a Mermaid diagram (graph LR) of the program's transition table.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng, err := turing.Load(args[0])
		if err != nil {
			fmt.Printf("Error loading program: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(eng.Snapshot(), nil))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
