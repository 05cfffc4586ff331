// Package providers contains dependency injection providers for the dashboard.
package providers

import (
	"github.com/samber/do/v2"

	"github.com/aitoolsdash/dashboard/internal/config"
	"github.com/aitoolsdash/dashboard/internal/logger"
)

// ProvideConfig provides the application configuration. Flags are optional;
// when the container holds none, only env, .env and defaults apply.
func ProvideConfig(i do.Injector) (*config.Config, error) {
	flags, err := do.Invoke[*config.Flags](i)
	if err != nil {
		flags = nil
	}
	return config.LoadConfig(flags)
}

// ProvideLogger provides the structured logger.
func ProvideLogger(i do.Injector) (*logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Config{
		Level:       logger.ParseLevel(cfg.Logger.Level),
		AddSource:   cfg.App.Environment == "development",
		Environment: cfg.App.Environment,
	})

	log.Info("Starting AI Tools Dashboard",
		"environment", cfg.App.Environment,
		"log_level", cfg.Logger.Level,
		"data_path", cfg.Storage.DataPath,
		"storage", cfg.Storage.Backend,
		"search", cfg.Search.Enabled,
	)

	return log, nil
}
