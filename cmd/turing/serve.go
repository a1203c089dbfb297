package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpAdapter "github.com/aretw0/turing/pkg/adapters/http"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes machine sessions, the program store and Prometheus metrics over a JSON API.
Sessions live in memory; with --redis, programs are shared and session commands are
serialized across replicas.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := mustLogger(cmd)
		port, _ := cmd.Flags().GetString("port")
		rate, _ := cmd.Flags().GetInt("rate-limit")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc, err := newServices(ctx, cmd, logger)
		if err != nil {
			fmt.Printf("Error initializing turing: %v\n", err)
			os.Exit(1)
		}
		defer svc.closeStore()

		handler := httpAdapter.NewHandler(svc.sessions, svc.dispatcher,
			httpAdapter.WithStore(svc.store),
			httpAdapter.WithGatherer(svc.registry),
			httpAdapter.WithRateLimit(rate, time.Minute),
			httpAdapter.WithLogger(logger),
		)

		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			fmt.Printf("Starting Turing Server on %s\n", srv.Addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			fmt.Println("\nStart shutdown...")

			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", shutdownTimeout, err)
				return srv.Close()
			}
			return nil
		})

		if err := g.Wait(); err != nil {
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Turing Server stopped gracefully")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().Int("rate-limit", httpAdapter.DefaultRateLimit, "Commands per minute and client IP")
	addServiceFlags(serveCmd)
}
