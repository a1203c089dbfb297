package main

import (
	"context"
	"log/slog"

	"github.com/aretw0/turing/pkg/command"
	"github.com/aretw0/turing/pkg/machine"
	"github.com/aretw0/turing/pkg/observability"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/aretw0/turing/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// services bundles what the server transports share.
type services struct {
	store      ports.ProgramStore
	sessions   *session.Manager
	dispatcher *command.Dispatcher
	registry   *prometheus.Registry
	closeStore func() error
}

func addServiceFlags(cmd *cobra.Command) {
	cmd.Flags().String("programs", "", "Directory of YAML programs to seed the store with")
	cmd.Flags().String("redis", "", "Redis address for the program store and session locks (in-memory when empty)")
	cmd.Flags().String("redis-password", "", "Redis password")
	cmd.Flags().Int("redis-db", 0, "Redis database")
	cmd.Flags().Int("max-steps", runner.DefaultMaxSteps, "Default step ceiling of the run command")
}

// newServices assembles the store, the session manager and the command dispatcher.
func newServices(ctx context.Context, cmd *cobra.Command, logger *slog.Logger) (*services, error) {
	var cfg storeConfig
	cfg.Programs, _ = cmd.Flags().GetString("programs")
	cfg.RedisAddr, _ = cmd.Flags().GetString("redis")
	cfg.RedisPassword, _ = cmd.Flags().GetString("redis-password")
	cfg.RedisDB, _ = cmd.Flags().GetInt("redis-db")
	maxSteps, _ := cmd.Flags().GetInt("max-steps")

	store, locker, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := observability.NewMetrics(reg)

	hooks := observability.ComposeHooks(observability.LogHooks(logger), metrics.Hooks())
	sessionOpts := []session.Option{
		session.WithLogger(logger),
		session.WithMachineOptions(machine.WithLogger(logger), machine.WithLifecycleHooks(hooks)),
	}
	if locker != nil {
		sessionOpts = append(sessionOpts, session.WithLocker(locker))
	}

	return &services{
		store:    store,
		sessions: session.NewManager(sessionOpts...),
		dispatcher: command.NewDispatcher(
			command.WithStore(store),
			command.WithMaxSteps(maxSteps),
			command.WithMetrics(metrics),
			command.WithLogger(logger),
		),
		registry:   reg,
		closeStore: closeStore,
	}, nil
}
