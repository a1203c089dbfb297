package main

import (
	"fmt"
	"os"

	"github.com/aretw0/turing/pkg/program"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <program.yaml>...",
	Short: "Check programs for consistency",
	Long:  `Parses each program and reports malformed transitions, states and blank symbols.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := false
		for _, path := range args {
			if err := runValidate(path); err != nil {
				failed = true
				fmt.Printf("%s: validation failed:\n", path)
				if errs := program.ValidationErrors(err); len(errs) > 0 {
					for _, e := range errs {
						fmt.Printf("  - %v\n", e)
					}
				} else {
					fmt.Printf("  - %v\n", err)
				}
				continue
			}
			fmt.Printf("%s: program is valid! ✅\n", path)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	prog, err := program.LoadFile(path)
	if err != nil {
		return err
	}
	return prog.Validate()
}
