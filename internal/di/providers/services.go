package providers

import (
	"github.com/samber/do/v2"

	"github.com/aitoolsdash/dashboard/internal/backup"
	"github.com/aitoolsdash/dashboard/internal/config"
	"github.com/aitoolsdash/dashboard/internal/logger"
	"github.com/aitoolsdash/dashboard/internal/service"
	"github.com/aitoolsdash/dashboard/internal/store"
	"github.com/aitoolsdash/dashboard/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideCatalogService provides the catalog service.
func ProvideCatalogService(i do.Injector) (*service.CatalogService, error) {
	st := do.MustInvoke[*store.Store](i)
	v := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCatalogService(st, v, log.WithComponent("catalog")), nil
}

// ProvideBackupService provides the backup service. Files go under DATA_PATH/backups.
func ProvideBackupService(i do.Injector) (*backup.Service, error) {
	cfg := do.MustInvoke[*config.Config](i)
	st := do.MustInvoke[*store.Store](i)
	log := do.MustInvoke[*logger.Logger](i)

	return backup.NewService(st, cfg.Storage.BackupDir(), log.WithComponent("backup")), nil
}
