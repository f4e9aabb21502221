package storage

import (
	"context"
	"fmt"

	"github.com/pbarros/fornecedores/internal/adapter/logger"
	"github.com/pbarros/fornecedores/internal/adapter/postgres"
	"github.com/pbarros/fornecedores/internal/adapter/sqlite"
	"github.com/pbarros/fornecedores/internal/config"
	"github.com/pbarros/fornecedores/internal/interfaces"
)

// Select probes the configured backends in priority order and returns the
// first one that accepts a connection: PostgreSQL when configured, then the
// embedded SQLite fallback. The choice is made once, at startup, and holds
// for the process lifetime; a backend failing later surfaces its error to
// the caller of Save, with no automatic failover.
func Select(ctx context.Context, cfg *config.Config, log logger.Logger) (interfaces.OrderStore, error) {
	if cfg.Database.Host != "" {
		store, err := postgres.NewOrderStore(ctx, cfg)
		if err == nil {
			log.Info("backend_selected", "Using PostgreSQL order store", "", map[string]interface{}{
				"backend": store.Name(),
				"host":    cfg.Database.Host,
			})
			return store, nil
		}
		log.Warn("backend_fallback", "PostgreSQL unavailable, falling back to SQLite", "", map[string]interface{}{
			"error": err.Error(),
		})
	}

	store, err := sqlite.NewOrderStore(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("no usable order store: %w", err)
	}
	log.Info("backend_selected", "Using SQLite order store", "", map[string]interface{}{
		"backend": store.Name(),
		"path":    cfg.SQLite.Path,
	})
	return store, nil
}
