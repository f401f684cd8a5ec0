package server

import (
	"context"

	"github.com/preston-bernstein/homework-bot/internal/config"
	"github.com/preston-bernstein/homework-bot/internal/store"
)

func openStateStore(ctx context.Context, cfg config.Config) (store.StateStore, error) {
	if cfg.StateDBPath == "" {
		return store.NewMemoryStore(), nil
	}
	return store.OpenSQLite(ctx, cfg.StateDBPath)
}
