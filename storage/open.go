package storage

import (
	"context"
	"fmt"

	"propbook/config"
	"propbook/models"
	"propbook/utils"
)

// Open returns the BookStorage selected by cfg.StorageBackend. The JSON
// backend takes its file paths from prefs.
func Open(ctx context.Context, cfg *config.Config, prefs *models.UserPrefs, logger *utils.Logger) (BookStorage, error) {
	switch cfg.StorageBackend {
	case config.BackendJSON, "":
		logger.Debug("[storage] JSON books at %s and %s", prefs.BuyerBookFilePath, prefs.PropertyBookFilePath)
		return NewJSONStorage(prefs.BuyerBookFilePath, prefs.PropertyBookFilePath), nil
	case config.BackendSQLite:
		logger.Debug("[storage] SQLite database at %s", cfg.SQLitePath)
		return NewSQLiteStorage(cfg.SQLitePath)
	case config.BackendPostgres:
		logger.Debug("[storage] PostgreSQL at %s:%s/%s", cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
		return NewPostgresStorage(ctx, cfg.DSN(), logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.StorageBackend)
	}
}
