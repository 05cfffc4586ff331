package store

import (
	"slices"

	"github.com/aitoolsdash/dashboard/internal/domain"
	domainerrors "github.com/aitoolsdash/dashboard/internal/errors"
	"github.com/aitoolsdash/dashboard/internal/id"
)

// ListTools returns all tools in insertion order.
func (s *Store) ListTools() []domain.Tool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Tool, len(s.tools))
	for i, t := range s.tools {
		out[i] = t.Clone()
	}
	return out
}

// GetTool returns the tool with the given id.
func (s *Store) GetTool(toolID string) (domain.Tool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.toolIndex(toolID)
	if i < 0 {
		return domain.Tool{}, domainerrors.NotFoundf("tool %s not found", toolID)
	}
	return s.tools[i].Clone(), nil
}

// AddTool stores t under a freshly generated id; t.ID is ignored.
// Every category id must exist.
func (s *Store) AddTool(t domain.Tool) (domain.Tool, error) {
	t = t.Clone()
	normalizeTool(&t)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkToolRefsLocked(&t); err != nil {
		return domain.Tool{}, err
	}

	toolID, err := s.newID(id.PrefixTool)
	if err != nil {
		return domain.Tool{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate tool id")
	}
	t.ID = toolID

	s.tools = append(s.tools, t)
	s.persistLocked(collectionTools)
	s.indexToolLocked(t)

	s.logger.Debug("tool added", "tool_id", t.ID, "name", t.Name)
	return t.Clone(), nil
}

// UpdateTool merges patch into the stored tool. Updates never cascade.
func (s *Store) UpdateTool(toolID string, patch domain.ToolPatch) (domain.Tool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.toolIndex(toolID)
	if i < 0 {
		return domain.Tool{}, domainerrors.NotFoundf("tool %s not found", toolID)
	}

	updated := patch.Apply(s.tools[i])
	normalizeTool(&updated)
	if err := s.checkToolRefsLocked(&updated); err != nil {
		return domain.Tool{}, err
	}

	s.tools[i] = updated
	s.persistLocked(collectionTools)
	s.indexToolLocked(updated)

	return updated.Clone(), nil
}

// DeleteTool removes the tool and every prompt that belongs to it.
// Deleting an unknown id is a no-op.
func (s *Store) DeleteTool(toolID string) CascadeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.toolIndex(toolID)
	if i < 0 {
		return CascadeResult{}
	}

	s.tools = slices.Delete(s.tools, i, i+1)
	result := CascadeResult{
		Found:          true,
		PromptsDeleted: s.cascadeToolLocked(toolID),
	}

	cols := []collection{collectionTools}
	if len(result.PromptsDeleted) > 0 {
		cols = append(cols, collectionPrompts)
	}
	s.persistLocked(cols...)

	if err := s.searchIndexer.DeleteTool(toolID); err != nil {
		s.logger.Warn("failed to remove tool from search index", "tool_id", toolID, "error", err)
	}
	for _, promptID := range result.PromptsDeleted {
		s.unindexPromptLocked(promptID)
	}

	s.logger.Info("tool deleted",
		"tool_id", toolID,
		"prompts_deleted", len(result.PromptsDeleted),
	)
	return result
}

func (s *Store) toolIndex(toolID string) int {
	return slices.IndexFunc(s.tools, func(t domain.Tool) bool { return t.ID == toolID })
}

func (s *Store) indexToolLocked(t domain.Tool) {
	if err := s.searchIndexer.IndexTool(t); err != nil {
		s.logger.Warn("failed to index tool", "tool_id", t.ID, "error", err)
	}
}
