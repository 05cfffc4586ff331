// Package di wires the dashboard's components together.
package di

import (
	"github.com/samber/do/v2"

	"github.com/aitoolsdash/dashboard/internal/backup"
	"github.com/aitoolsdash/dashboard/internal/config"
	"github.com/aitoolsdash/dashboard/internal/di/providers"
	"github.com/aitoolsdash/dashboard/internal/logger"
	"github.com/aitoolsdash/dashboard/internal/service"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// NewContainer creates the DI container with all providers registered.
// flags may be nil, in which case configuration comes from env and .env only.
func NewContainer(flags *config.Flags) *do.RootScope {
	injector := do.New()

	if flags != nil {
		do.ProvideValue(injector, flags)
	}

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)

	// Storage layer
	do.Provide(injector, providers.ProvideBackend)
	do.Provide(injector, providers.ProvideStore)

	// Search layer
	do.Provide(injector, providers.ProvideSearchIndex)
	do.Provide(injector, providers.ProvideSearchService)

	// Business services
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideCatalogService)
	do.Provide(injector, providers.ProvideBackupService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes everything except the HTTP server. Offline commands
// stop here; Serve continues from it.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*store.Store](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*providers.SearchIndexHandle](injector); err != nil {
		return err
	}

	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.CatalogService](injector)
	_ = do.MustInvoke[*backup.Service](injector)

	return nil
}

// Serve bootstraps the container and starts the HTTP server.
func Serve(injector do.Injector) (*providers.HTTPServerHandle, error) {
	if err := Bootstrap(injector); err != nil {
		return nil, err
	}
	return do.Invoke[*providers.HTTPServerHandle](injector)
}
