package store

import (
	"slices"

	"github.com/aitoolsdash/dashboard/internal/domain"
)

// RepairReport counts the fixes applied by repairLocked.
//
// Cascades write several keys. Backends without batch writes, or a crash
// between two writes, can leave a prompt pointing at a deleted tool or a
// tool still filed under a deleted category. Repair finishes such cascades.
type RepairReport struct {
	DuplicateIDsDropped    int
	OrphanPromptsDropped   int
	ToolCategoryRefsPruned int
	PromptCategoriesReset  int

	// OrphanPromptsKept counts prompts whose tool is missing but which were
	// left in place because the scope forbade dropping them.
	OrphanPromptsKept int
}

// Changed reports whether any fix was applied.
func (r RepairReport) Changed() bool {
	r.OrphanPromptsKept = 0
	return r != RepairReport{}
}

func (r RepairReport) touched() []collection {
	var cols []collection
	if r.DuplicateIDsDropped > 0 {
		cols = append(cols, collectionCategories, collectionTools, collectionPrompts)
		return cols
	}
	if r.ToolCategoryRefsPruned > 0 {
		cols = append(cols, collectionTools)
	}
	if r.OrphanPromptsDropped > 0 || r.PromptCategoriesReset > 0 {
		cols = append(cols, collectionPrompts)
	}
	return cols
}

// repairScope selects the cross-collection fixes repairLocked may apply.
// Duplicate ids are always dropped: they never depend on another key.
type repairScope struct {
	// dropOrphanPrompts deletes prompts whose tool is missing.
	dropOrphanPrompts bool
	// fixCategoryRefs prunes tool category ids and resets prompt category
	// ids that point at a missing category.
	fixCategoryRefs bool
}

// fullRepair restores every invariant. Used when the caller supplies the
// whole catalog at once.
var fullRepair = repairScope{dropOrphanPrompts: true, fixCategoryRefs: true}

// loadRepairScope derives what load may fix from where each key came from.
// A reference is only judged dangling against a collection read from the
// backend: when the referenced key fell back to the built-in dataset its
// real contents are unknown, and stored entities pointing into it are kept.
// Stored prompts are never dropped on load; only built-in ones are.
func loadRepairScope(report LoadReport) repairScope {
	return repairScope{
		dropOrphanPrompts: report.Prompts.Source == SourceDefault,
		fixCategoryRefs:   report.Categories.Source == SourceStored,
	}
}

// repairLocked restores the cross-collection invariants in place, within
// scope: unique ids per collection, every prompt owned by a live tool, and
// no reference to a category that does not exist.
func (s *Store) repairLocked(scope repairScope) RepairReport {
	var r RepairReport

	var dropped int
	s.categories, dropped = dedupeByID(s.categories, func(c domain.Category) string { return c.ID })
	r.DuplicateIDsDropped += dropped
	s.tools, dropped = dedupeByID(s.tools, func(t domain.Tool) string { return t.ID })
	r.DuplicateIDsDropped += dropped
	s.prompts, dropped = dedupeByID(s.prompts, func(p domain.Prompt) string { return p.ID })
	r.DuplicateIDsDropped += dropped

	categoryIDs := make(map[string]bool, len(s.categories))
	for _, c := range s.categories {
		categoryIDs[c.ID] = true
	}
	toolIDs := make(map[string]bool, len(s.tools))
	for _, t := range s.tools {
		toolIDs[t.ID] = true
	}

	if scope.fixCategoryRefs {
		for i := range s.tools {
			before := len(s.tools[i].CategoryIDs)
			s.tools[i].CategoryIDs = slices.DeleteFunc(s.tools[i].CategoryIDs, func(id string) bool {
				return !categoryIDs[id]
			})
			r.ToolCategoryRefsPruned += before - len(s.tools[i].CategoryIDs)
		}
	}

	orphan := func(p domain.Prompt) bool { return !toolIDs[p.ToolID] }
	if scope.dropOrphanPrompts {
		before := len(s.prompts)
		s.prompts = slices.DeleteFunc(s.prompts, orphan)
		r.OrphanPromptsDropped = before - len(s.prompts)
	} else {
		for _, p := range s.prompts {
			if orphan(p) {
				r.OrphanPromptsKept++
			}
		}
	}

	if scope.fixCategoryRefs {
		for i := range s.prompts {
			if s.prompts[i].CategoryID != "" && !categoryIDs[s.prompts[i].CategoryID] {
				s.prompts[i].CategoryID = ""
				r.PromptCategoriesReset++
			}
		}
	}

	if r.Changed() {
		s.logger.Warn("repaired dangling references in catalog",
			"duplicate_ids_dropped", r.DuplicateIDsDropped,
			"orphan_prompts_dropped", r.OrphanPromptsDropped,
			"tool_category_refs_pruned", r.ToolCategoryRefsPruned,
			"prompt_categories_reset", r.PromptCategoriesReset,
		)
	}
	if r.OrphanPromptsKept > 0 {
		s.logger.Warn("keeping prompts whose tool is missing",
			"count", r.OrphanPromptsKept,
		)
	}

	return r
}

// dedupeByID keeps the first entity for each id.
func dedupeByID[T any](items []T, idOf func(T) string) ([]T, int) {
	seen := make(map[string]bool, len(items))
	before := len(items)
	items = slices.DeleteFunc(items, func(item T) bool {
		id := idOf(item)
		if seen[id] {
			return true
		}
		seen[id] = true
		return false
	})
	return items, before - len(items)
}

// normalizeTool replaces nil slices so a tool always encodes as arrays.
func normalizeTool(t *domain.Tool) {
	if t.CategoryIDs == nil {
		t.CategoryIDs = []string{}
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
}

// normalizeCatalog prepares a catalog supplied from outside the store:
// nil collections become empty and ratings are clamped to the valid range.
func normalizeCatalog(c *domain.Catalog) {
	if c.Categories == nil {
		c.Categories = []domain.Category{}
	}
	if c.Tools == nil {
		c.Tools = []domain.Tool{}
	}
	if c.Prompts == nil {
		c.Prompts = []domain.Prompt{}
	}
	for i := range c.Tools {
		normalizeTool(&c.Tools[i])
		c.Tools[i].PersonalRating = domain.ClampRating(c.Tools[i].PersonalRating)
	}
	for i := range c.Prompts {
		c.Prompts[i].PersonalRating = domain.ClampRating(c.Prompts[i].PersonalRating)
	}
}
