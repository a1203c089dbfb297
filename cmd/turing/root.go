package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/turing/internal/logging"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic single-tape Turing machine engine",
	Long: `Turing lets you describe machines as transition tables, run them step by step
from a terminal, and share them over HTTP or the Model Context Protocol.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// newLogger builds the stderr logger selected by the persistent flags.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	levelFlag, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	level, err := logging.ParseLevel(levelFlag)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format)
}

func mustLogger(cmd *cobra.Command) *slog.Logger {
	logger, err := newLogger(cmd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return logger
}
