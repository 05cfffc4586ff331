package search

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/aitoolsdash/dashboard/internal/domain"
)

// Index wraps an in-memory Bleve index of tools and prompts.
//
// It implements store.SearchIndexer. The store is the source of truth: the
// index is rebuilt from a snapshot at startup and kept current by the
// store's mutation hooks, so nothing is written to disk.
//
// Thread safety: All public methods are safe for concurrent use.
type Index struct {
	mu     sync.RWMutex // Protects index swaps during rebuild
	index  bleve.Index
	logger *slog.Logger

	// Denormalization state: prompts carry their tool's name, so renaming a
	// tool re-indexes its prompts.
	toolNames map[string]string
	prompts   map[string]domain.Prompt
}

// Options configures the search index.
type Options struct {
	Logger *slog.Logger // Logger for operations (uses discard if nil)
}

// NewIndex creates an empty in-memory index.
func NewIndex(opts Options) (*Index, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &Index{
		index:     index,
		logger:    logger,
		toolNames: make(map[string]string),
		prompts:   make(map[string]domain.Prompt),
	}, nil
}

// Close closes the index and releases resources.
func (s *Index) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexTool adds or replaces a tool, and refreshes its prompts when the
// tool's name changed.
func (s *Index) IndexTool(t domain.Tool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	renamed := s.toolNames[t.ID] != t.Name
	s.toolNames[t.ID] = t.Name

	batch := s.index.NewBatch()
	doc := ToolToDocument(t)
	if err := batch.Index(doc.Key(), doc.ToMap()); err != nil {
		return fmt.Errorf("index tool %s: %w", t.ID, err)
	}
	if renamed {
		for _, p := range s.prompts {
			if p.ToolID != t.ID {
				continue
			}
			pdoc := PromptToDocument(p, t.Name)
			if err := batch.Index(pdoc.Key(), pdoc.ToMap()); err != nil {
				return fmt.Errorf("index prompt %s: %w", p.ID, err)
			}
		}
	}
	return s.index.Batch(batch)
}

// DeleteTool removes a tool. Its prompts are removed by separate
// DeletePrompt calls.
func (s *Index) DeleteTool(toolID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.toolNames, toolID)
	return s.index.Delete(docKey(DocTypeTool, toolID))
}

// IndexPrompt adds or replaces a prompt.
func (s *Index) IndexPrompt(p domain.Prompt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prompts[p.ID] = p
	doc := PromptToDocument(p, s.toolNames[p.ToolID])
	return s.index.Index(doc.Key(), doc.ToMap())
}

// DeletePrompt removes a prompt.
func (s *Index) DeletePrompt(promptID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.prompts, promptID)
	return s.index.Delete(docKey(DocTypePrompt, promptID))
}

// DocumentCount returns the total number of indexed documents.
func (s *Index) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}

// Rebuild drops the index and indexes every tool and prompt in c in one batch.
//
// This acquires an exclusive lock and blocks searches until it finishes.
func (s *Index) Rebuild(c domain.Catalog) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	toolNames := make(map[string]string, len(c.Tools))
	prompts := make(map[string]domain.Prompt, len(c.Prompts))

	batch := index.NewBatch()
	for _, t := range c.Tools {
		toolNames[t.ID] = t.Name
		doc := ToolToDocument(t)
		if err := batch.Index(doc.Key(), doc.ToMap()); err != nil {
			return fmt.Errorf("batch index %s: %w", doc.Key(), err)
		}
	}
	for _, p := range c.Prompts {
		prompts[p.ID] = p
		doc := PromptToDocument(p, toolNames[p.ToolID])
		if err := batch.Index(doc.Key(), doc.ToMap()); err != nil {
			return fmt.Errorf("batch index %s: %w", doc.Key(), err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.index.Close(); err != nil {
		s.logger.Warn("failed to close previous search index", "error", err)
	}
	s.index = index
	s.toolNames = toolNames
	s.prompts = prompts

	s.logger.Info("rebuilt search index", "tools", len(c.Tools), "prompts", len(c.Prompts))
	return nil
}
