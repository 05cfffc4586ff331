package store

import (
	"slices"

	"github.com/aitoolsdash/dashboard/internal/domain"
	domainerrors "github.com/aitoolsdash/dashboard/internal/errors"
	"github.com/aitoolsdash/dashboard/internal/id"
)

// ListPrompts returns all prompts in insertion order.
func (s *Store) ListPrompts() []domain.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.prompts)
}

// GetPrompt returns the prompt with the given id.
func (s *Store) GetPrompt(promptID string) (domain.Prompt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.promptIndex(promptID)
	if i < 0 {
		return domain.Prompt{}, domainerrors.NotFoundf("prompt %s not found", promptID)
	}
	return s.prompts[i], nil
}

// PromptsForTool returns the prompts owned by toolID in insertion order.
func (s *Store) PromptsForTool(toolID string) []domain.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Prompt
	for _, p := range s.prompts {
		if p.ToolID == toolID {
			out = append(out, p)
		}
	}
	return out
}

// AddPrompt stores p under a freshly generated id; p.ID is ignored.
// The owning tool must exist, and the category must exist when set.
func (s *Store) AddPrompt(p domain.Prompt) (domain.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkPromptRefsLocked(&p); err != nil {
		return domain.Prompt{}, err
	}

	promptID, err := s.newID(id.PrefixPrompt)
	if err != nil {
		return domain.Prompt{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate prompt id")
	}
	p.ID = promptID

	s.prompts = append(s.prompts, p)
	s.persistLocked(collectionPrompts)
	s.indexPromptLocked(p)

	s.logger.Debug("prompt added", "prompt_id", p.ID, "tool_id", p.ToolID)
	return p, nil
}

// UpdatePrompt merges patch into the stored prompt.
func (s *Store) UpdatePrompt(promptID string, patch domain.PromptPatch) (domain.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.promptIndex(promptID)
	if i < 0 {
		return domain.Prompt{}, domainerrors.NotFoundf("prompt %s not found", promptID)
	}

	updated := patch.Apply(s.prompts[i])
	if err := s.checkPromptRefsLocked(&updated); err != nil {
		return domain.Prompt{}, err
	}

	s.prompts[i] = updated
	s.persistLocked(collectionPrompts)
	s.indexPromptLocked(updated)

	return updated, nil
}

// DeletePrompt removes the prompt. It reports whether the prompt existed;
// deleting an unknown id is a no-op.
func (s *Store) DeletePrompt(promptID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.promptIndex(promptID)
	if i < 0 {
		return false
	}

	s.prompts = slices.Delete(s.prompts, i, i+1)
	s.persistLocked(collectionPrompts)
	s.unindexPromptLocked(promptID)

	s.logger.Debug("prompt deleted", "prompt_id", promptID)
	return true
}

func (s *Store) promptIndex(promptID string) int {
	return slices.IndexFunc(s.prompts, func(p domain.Prompt) bool { return p.ID == promptID })
}

func (s *Store) indexPromptLocked(p domain.Prompt) {
	if err := s.searchIndexer.IndexPrompt(p); err != nil {
		s.logger.Warn("failed to index prompt", "prompt_id", p.ID, "error", err)
	}
}

func (s *Store) unindexPromptLocked(promptID string) {
	if err := s.searchIndexer.DeletePrompt(promptID); err != nil {
		s.logger.Warn("failed to remove prompt from search index", "prompt_id", promptID, "error", err)
	}
}
