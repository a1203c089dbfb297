package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	redisAdapter "github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/ports"
	"github.com/aretw0/turing/pkg/program"
)

// loadPrograms reads every *.yaml and *.yml program in dir. An empty dir yields nothing.
func loadPrograms(dir string) ([]*program.Program, error) {
	if dir == "" {
		return nil, nil
	}

	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		paths = append(paths, matches...)
	}

	progs := make([]*program.Program, 0, len(paths))
	for _, path := range paths {
		prog, err := program.LoadFile(path)
		if err != nil {
			return nil, err
		}
		if err := prog.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		progs = append(progs, prog)
	}
	return progs, nil
}

type storeConfig struct {
	Programs      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// openStore returns the program store and, with Redis, the cross-replica session locker.
// The returned close function releases the backend connection.
func openStore(ctx context.Context, cfg storeConfig, logger *slog.Logger) (ports.ProgramStore, ports.DistributedLocker, func() error, error) {
	seed, err := loadPrograms(cfg.Programs)
	if err != nil {
		return nil, nil, nil, err
	}

	if cfg.RedisAddr == "" {
		logger.Info("using in-memory program store", "programs", len(seed))
		return memory.NewStore(seed...), nil, func() error { return nil }, nil
	}

	store := redisAdapter.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, nil, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
	}
	for _, prog := range seed {
		if err := store.Save(ctx, prog); err != nil {
			_ = store.Close()
			return nil, nil, nil, err
		}
	}
	logger.Info("using redis program store", "addr", cfg.RedisAddr, "programs", len(seed))

	locker := redisAdapter.NewLocker(store.Client(), "turing:lock:")
	return store, locker, store.Close, nil
}
