package providers

import (
	"fmt"
	"os"

	"github.com/samber/do/v2"

	"github.com/aitoolsdash/dashboard/internal/config"
	"github.com/aitoolsdash/dashboard/internal/kv"
	"github.com/aitoolsdash/dashboard/internal/logger"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// closableBackend is a kv backend holding an open handle.
type closableBackend interface {
	kv.Backend
	Close() error
}

// BackendHandle wraps the backing store with shutdown capability.
type BackendHandle struct {
	kv.Backend
	closer closableBackend
	kind   string
}

// Kind returns the configured backend name.
func (h *BackendHandle) Kind() string {
	return h.kind
}

// Shutdown implements do.Shutdownable.
func (h *BackendHandle) Shutdown() error {
	return h.closer.Close()
}

// ProvideBackend opens the backing store named by STORAGE_BACKEND.
func ProvideBackend(i do.Injector) (*BackendHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeLog := log.WithComponent("kv")

	var (
		backend closableBackend
		err     error
	)
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Warn("Using in-memory storage; the catalog is lost on exit")
		backend = kv.NewMemory()
	case config.BackendSQLite:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		backend, err = kv.OpenSQLite(cfg.Storage.SQLitePath(), storeLog)
	default:
		if err := os.MkdirAll(cfg.Storage.DataPath, 0o750); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		backend, err = kv.OpenBadger(cfg.Storage.BadgerDir(), storeLog)
	}
	if err != nil {
		return nil, err
	}

	return &BackendHandle{Backend: backend, closer: backend, kind: cfg.Storage.Backend}, nil
}

// ProvideStore provides the catalog store.
func ProvideStore(i do.Injector) (*store.Store, error) {
	backendHandle := do.MustInvoke[*BackendHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	st, err := store.Open(backendHandle.Backend, log.WithComponent("store"))
	if err != nil {
		return nil, err
	}

	report := st.LoadReport()
	log.Info("Catalog loaded",
		"backend", backendHandle.Kind(),
		"categories", len(st.ListCategories()),
		"tools", len(st.ListTools()),
		"prompts", len(st.ListPrompts()),
		"schema_version_found", report.SchemaVersion,
	)

	return st, nil
}
