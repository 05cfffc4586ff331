// Package store owns the dashboard catalog: the in-memory categories, tools
// and prompts, the referential-integrity rules between them, and their
// synchronisation with a key-value backing store.
//
// A Store is the single logical owner of the three collections. Every
// mutation updates memory first, applies cascades, then writes the touched
// collections back to the backend before returning. Write failures are
// logged and never roll back memory.
package store

import (
	"io"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/id"
	"github.com/aitoolsdash/dashboard/internal/kv"
	"github.com/aitoolsdash/dashboard/internal/view"
)

// SearchIndexer is notified after each mutation so a search index can stay
// in sync. Errors are logged; they never fail the mutation.
type SearchIndexer interface {
	IndexTool(t domain.Tool) error
	DeleteTool(toolID string) error
	IndexPrompt(p domain.Prompt) error
	DeletePrompt(promptID string) error
	Rebuild(c domain.Catalog) error
}

// NoopSearchIndexer is a no-op implementation of SearchIndexer.
type NoopSearchIndexer struct{}

// IndexTool is a no-op.
func (NoopSearchIndexer) IndexTool(domain.Tool) error { return nil }

// DeleteTool is a no-op.
func (NoopSearchIndexer) DeleteTool(string) error { return nil }

// IndexPrompt is a no-op.
func (NoopSearchIndexer) IndexPrompt(domain.Prompt) error { return nil }

// DeletePrompt is a no-op.
func (NoopSearchIndexer) DeletePrompt(string) error { return nil }

// Rebuild is a no-op.
func (NoopSearchIndexer) Rebuild(domain.Catalog) error { return nil }

// Store holds the catalog collections and keeps them mirrored to a backend.
type Store struct {
	mu sync.RWMutex

	backend kv.Backend
	logger  *slog.Logger
	newID   id.Generator

	// Set via SetSearchIndexer after creation; the index is built from the
	// store's own contents.
	searchIndexer SearchIndexer

	categories []domain.Category
	tools      []domain.Tool
	prompts    []domain.Prompt

	report       LoadReport
	lastWriteErr error
	schemaTag    int

	// Keys whose read failed at Open. They are never written, except by
	// Replace.
	suspended map[string]bool
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the NanoID generator.
func WithIDGenerator(gen id.Generator) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// Open loads the three collections from backend and returns a ready Store.
//
// Absent or undecodable keys fall back to the built-in dataset; legacy tool
// data is migrated; dangling category references are repaired. A key the
// backend fails to read also falls back, but is not written until Replace. None of these conditions is an error. Open only fails when the
// backend is nil.
func Open(backend kv.Backend, logger *slog.Logger, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errNilBackend
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Store{
		backend:       backend,
		logger:        logger,
		newID:         id.Generate,
		searchIndexer: NoopSearchIndexer{},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.load()

	return s, nil
}

// SetSearchIndexer attaches an indexer and rebuilds it from current contents.
func (s *Store) SetSearchIndexer(indexer SearchIndexer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexer == nil {
		indexer = NoopSearchIndexer{}
	}
	s.searchIndexer = indexer
	if err := indexer.Rebuild(s.snapshotLocked()); err != nil {
		s.logger.Warn("search index rebuild failed", "error", err)
	}
}

// LoadReport describes where each collection came from at Open.
func (s *Store) LoadReport() LoadReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.report
}

// LastWriteError returns the most recent backend write failure, or nil if
// the last write succeeded. A non-nil value means the persisted state may
// lag behind memory.
func (s *Store) LastWriteError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastWriteErr
}

// SuspendedKeys lists the backend keys that failed to read at Open and are
// therefore not being written. Sorted.
func (s *Store) SuspendedKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.suspended))
}

// Snapshot returns a deep copy of all three collections.
func (s *Store) Snapshot() domain.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() domain.Catalog {
	return domain.Catalog{
		Categories: s.categories,
		Tools:      s.tools,
		Prompts:    s.prompts,
	}.Clone()
}

// ProjectFiltered returns the tools and prompts matching searchTerm and
// categoryID (domain.AllCategories or "" for every category).
func (s *Store) ProjectFiltered(searchTerm, categoryID string) view.Result {
	return view.Project(s.Snapshot(), view.Filter{
		SearchTerm: searchTerm,
		CategoryID: categoryID,
	})
}

// Replace swaps the whole catalog, e.g. when restoring a backup. Dangling
// references in c are repaired first. All three keys are written in one
// batch, including keys suspended after a failed read.
func (s *Store) Replace(c domain.Catalog) RepairReport {
	c = c.Clone()
	normalizeCatalog(&c)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.categories = c.Categories
	s.tools = c.Tools
	s.prompts = c.Prompts

	repaired := s.repairLocked(fullRepair)
	if len(s.suspended) > 0 {
		s.logger.Info("replacing catalog over keys that failed to load",
			"keys", slices.Sorted(maps.Keys(s.suspended)))
		clear(s.suspended)
	}
	s.persistLocked(collectionCategories, collectionTools, collectionPrompts)

	if err := s.searchIndexer.Rebuild(s.snapshotLocked()); err != nil {
		s.logger.Warn("search index rebuild failed", "error", err)
	}

	s.logger.Info("catalog replaced",
		"categories", len(s.categories),
		"tools", len(s.tools),
		"prompts", len(s.prompts),
	)

	return repaired
}
