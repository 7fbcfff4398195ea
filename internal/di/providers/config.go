// Package providers contains dependency injection providers for the Frame Archive server.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/framearchive/framearchive/internal/config"
	"github.com/framearchive/framearchive/internal/logger"
)

// ProvideConfig provides the application configuration.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.LoadConfig()
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   !cfg.IsProduction(),
		Environment: cfg.App.Environment,
		File: logger.FileConfig{
			Path:       cfg.Logger.File,
			MaxSizeMB:  cfg.Logger.FileMaxSizeMB,
			MaxBackups: cfg.Logger.FileMaxBackups,
			MaxAgeDays: cfg.Logger.FileMaxAgeDays,
			Compress:   true,
		},
	})

	log.Info("Starting Frame Archive server",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"db_driver", cfg.Database.Driver,
		"base_url", cfg.Server.BaseURL,
		"signer", cfg.Signer.Kind,
	)

	return log, nil
}
