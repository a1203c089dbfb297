package main

import (
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/turing"
	"github.com/aretw0/turing/pkg/adapters/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts Turing as an MCP Server over Standard Input/Output.
This allows AI agents to configure and run machines through the turing_command
and turing_snapshot tools.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := mustLogger(cmd)
		slog.SetDefault(logger)

		svc, err := newServices(cmd.Context(), cmd, logger)
		if err != nil {
			log.Fatalf("Error initializing turing: %v", err)
		}
		defer svc.closeStore()

		srv := mcp.NewServer("turing", strings.TrimSpace(turing.Version), svc.sessions, svc.dispatcher,
			mcp.WithStore(svc.store),
			mcp.WithLogger(logger),
		)

		// Ensure logs don't corrupt JSON-RPC on Stdout
		log.SetOutput(os.Stderr)
		logger.Info("Starting Turing MCP Server (Stdio)...")
		if err := srv.ServeStdio(); err != nil {
			logger.Error("MCP Server execution failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	addServiceFlags(mcpCmd)
}
