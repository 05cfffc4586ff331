package store

import (
	"slices"

	"github.com/aitoolsdash/dashboard/internal/domain"
	domainerrors "github.com/aitoolsdash/dashboard/internal/errors"
	"github.com/aitoolsdash/dashboard/internal/id"
)

// ListCategories returns all categories in insertion order.
func (s *Store) ListCategories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// GetCategory returns the category with the given id.
func (s *Store) GetCategory(categoryID string) (domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.categoryIndex(categoryID)
	if i < 0 {
		return domain.Category{}, domainerrors.NotFoundf("category %s not found", categoryID)
	}
	return s.categories[i], nil
}

// AddCategory appends a new category named name.
//
// An empty name or a name already used by another category is rejected and
// the collections are left untouched; callers that want the permissive
// behaviour can ignore ErrAlreadyExists.
func (s *Store) AddCategory(name string) (domain.Category, error) {
	if name == "" {
		return domain.Category{}, domainerrors.Validation("category name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if slices.ContainsFunc(s.categories, func(c domain.Category) bool { return c.Name == name }) {
		return domain.Category{}, domainerrors.AlreadyExistsf("category %q already exists", name)
	}

	categoryID, err := s.newID(id.PrefixCategory)
	if err != nil {
		return domain.Category{}, domainerrors.Wrap(err, domainerrors.CodeInternal, "generate category id")
	}

	c := domain.Category{ID: categoryID, Name: name}
	s.categories = append(s.categories, c)
	s.persistLocked(collectionCategories)

	s.logger.Debug("category added", "category_id", c.ID, "name", c.Name)
	return c, nil
}

// UpdateCategory merges patch into the stored category.
// Renames are not checked for uniqueness, and tools and prompts need no
// change because they reference categories by id.
func (s *Store) UpdateCategory(categoryID string, patch domain.CategoryPatch) (domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(categoryID)
	if i < 0 {
		return domain.Category{}, domainerrors.NotFoundf("category %s not found", categoryID)
	}

	s.categories[i] = patch.Apply(s.categories[i])
	s.persistLocked(collectionCategories)

	return s.categories[i], nil
}

// DeleteCategory removes the category and orphans everything filed under
// it: the id is removed from every tool's categoryIds and every prompt in
// the category becomes uncategorized. Deleting an unknown id is a no-op.
func (s *Store) DeleteCategory(categoryID string) CascadeResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.categoryIndex(categoryID)
	if i < 0 {
		return CascadeResult{}
	}

	s.categories = slices.Delete(s.categories, i, i+1)
	result := s.orphanCategoryLocked(categoryID)
	result.Found = true

	cols := []collection{collectionCategories}
	if result.ToolsUpdated > 0 {
		cols = append(cols, collectionTools)
	}
	if result.PromptsReset > 0 {
		cols = append(cols, collectionPrompts)
	}
	s.persistLocked(cols...)

	s.logger.Info("category deleted",
		"category_id", categoryID,
		"tools_updated", result.ToolsUpdated,
		"prompts_reset", result.PromptsReset,
	)
	return result
}

// CategoryUsage counts the tools and prompts filed under categoryID, so the
// presentation layer can say what a delete will touch.
func (s *Store) CategoryUsage(categoryID string) (tools, prompts int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.tools {
		if s.tools[i].HasCategory(categoryID) {
			tools++
		}
	}
	for _, p := range s.prompts {
		if p.CategoryID == categoryID {
			prompts++
		}
	}
	return tools, prompts
}

func (s *Store) categoryIndex(categoryID string) int {
	return slices.IndexFunc(s.categories, func(c domain.Category) bool { return c.ID == categoryID })
}

func (s *Store) categoryExists(categoryID string) bool {
	return s.categoryIndex(categoryID) >= 0
}
