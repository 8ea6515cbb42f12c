package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/queuectl/queuectl"
	"github.com/queuectl/queuectl/config"
	sqlstore "github.com/queuectl/queuectl/sql"
	"github.com/uptrace/bun"
)

const dbFileName = "jobs.db"

// env bundles the shared state every command operates on: the resolved
// state directory, the configuration, the open store and the lifecycle
// manager built over it.
type env struct {
	dir     string
	cfg     *config.Config
	db      *bun.DB
	store   *sqlstore.Store
	manager *queuectl.Manager
}

func resolveStateDir() (string, error) {
	if stateDir != "" {
		return filepath.Abs(stateDir)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot resolve home directory: %w", err)
	}
	return filepath.Join(home, ".queuectl"), nil
}

func openEnv(ctx context.Context) (*env, error) {
	dir, err := resolveStateDir()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	db, err := sqlstore.Open(filepath.Join(dir, dbFileName))
	if err != nil {
		return nil, err
	}
	if err := sqlstore.InitDB(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	store := sqlstore.NewStore(db)
	manager := queuectl.NewManager(store, store, store, &queuectl.ManagerConfig{
		Backoff: queuectl.BackoffConfig{
			MaxRetries: cfg.MaxRetries(),
			Base:       cfg.BackoffBase(),
		},
		DefaultTimeout: cfg.DefaultTimeout(),
	})
	return &env{
		dir:     dir,
		cfg:     cfg,
		db:      db,
		store:   store,
		manager: manager,
	}, nil
}

func (e *env) Close() {
	_ = e.db.Close()
}
