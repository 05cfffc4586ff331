package store

import (
	"slices"

	"github.com/aitoolsdash/dashboard/internal/domain"
	domainerrors "github.com/aitoolsdash/dashboard/internal/errors"
)

// CascadeResult describes a delete and the follow-on changes it caused.
type CascadeResult struct {
	Found          bool     // the entity existed and was removed
	PromptsDeleted []string // prompts removed with their tool
	ToolsUpdated   int      // tools that lost a category reference
	PromptsReset   int      // prompts that became uncategorized
}

// cascadeToolLocked removes every prompt owned by toolID and returns their ids.
func (s *Store) cascadeToolLocked(toolID string) []string {
	var deleted []string
	s.prompts = slices.DeleteFunc(s.prompts, func(p domain.Prompt) bool {
		if p.ToolID == toolID {
			deleted = append(deleted, p.ID)
			return true
		}
		return false
	})
	return deleted
}

// orphanCategoryLocked strips categoryID from tools and resets it on prompts,
// re-indexing whatever it touched. Tools and prompts themselves are kept.
func (s *Store) orphanCategoryLocked(categoryID string) CascadeResult {
	var r CascadeResult

	for i := range s.tools {
		before := len(s.tools[i].CategoryIDs)
		s.tools[i].CategoryIDs = slices.DeleteFunc(s.tools[i].CategoryIDs, func(id string) bool {
			return id == categoryID
		})
		if len(s.tools[i].CategoryIDs) != before {
			r.ToolsUpdated++
			s.indexToolLocked(s.tools[i])
		}
	}

	for i := range s.prompts {
		if s.prompts[i].CategoryID == categoryID {
			s.prompts[i].CategoryID = ""
			r.PromptsReset++
			s.indexPromptLocked(s.prompts[i])
		}
	}

	return r
}

// checkToolRefsLocked rejects category ids that do not exist.
func (s *Store) checkToolRefsLocked(t *domain.Tool) error {
	for _, categoryID := range t.CategoryIDs {
		if !s.categoryExists(categoryID) {
			return domainerrors.Validationf("unknown category %s", categoryID)
		}
	}
	return nil
}

// checkPromptRefsLocked rejects a prompt whose tool is missing or whose
// category is set but unknown.
func (s *Store) checkPromptRefsLocked(p *domain.Prompt) error {
	if p.ToolID == "" {
		return domainerrors.Validation("prompt must belong to a tool")
	}
	if s.toolIndex(p.ToolID) < 0 {
		return domainerrors.Validationf("unknown tool %s", p.ToolID)
	}
	if p.CategoryID != "" && !s.categoryExists(p.CategoryID) {
		return domainerrors.Validationf("unknown category %s", p.CategoryID)
	}
	return nil
}
