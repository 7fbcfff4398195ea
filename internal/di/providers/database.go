package providers

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/framearchive/framearchive/internal/config"
	"github.com/framearchive/framearchive/internal/logger"
	"github.com/framearchive/framearchive/internal/store/sqldb"
)

// StoreHandle owns the catalog connection pool for the life of the process.
type StoreHandle struct {
	*sqldb.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore opens the catalog store named by the database config.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Database.Driver == sqldb.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.URL), 0o750); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	st, err := sqldb.Open(sqldb.Options{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		Logger:       log.Logger,
	})
	if err != nil {
		return nil, err
	}

	// Never log a PostgreSQL URL; it may carry credentials.
	if cfg.Database.Driver == sqldb.DriverSQLite {
		log.Info("Database initialized", "driver", cfg.Database.Driver, "path", cfg.Database.URL)
	} else {
		log.Info("Database initialized", "driver", cfg.Database.Driver)
	}

	return &StoreHandle{Store: st}, nil
}
