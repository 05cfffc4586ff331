// Package service holds the request-level operations the API exposes:
// boundary validation and input normalisation on top of the catalog store.
package service

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/aitoolsdash/dashboard/internal/domain"
	domainerrors "github.com/aitoolsdash/dashboard/internal/errors"
	"github.com/aitoolsdash/dashboard/internal/store"
	"github.com/aitoolsdash/dashboard/internal/validation"
	"github.com/aitoolsdash/dashboard/internal/view"
)

// CatalogStore is the store surface the service uses.
type CatalogStore interface {
	ListCategories() []domain.Category
	GetCategory(categoryID string) (domain.Category, error)
	AddCategory(name string) (domain.Category, error)
	UpdateCategory(categoryID string, patch domain.CategoryPatch) (domain.Category, error)
	DeleteCategory(categoryID string) store.CascadeResult
	CategoryUsage(categoryID string) (tools, prompts int)

	ListTools() []domain.Tool
	GetTool(toolID string) (domain.Tool, error)
	AddTool(t domain.Tool) (domain.Tool, error)
	UpdateTool(toolID string, patch domain.ToolPatch) (domain.Tool, error)
	DeleteTool(toolID string) store.CascadeResult

	ListPrompts() []domain.Prompt
	GetPrompt(promptID string) (domain.Prompt, error)
	PromptsForTool(toolID string) []domain.Prompt
	AddPrompt(p domain.Prompt) (domain.Prompt, error)
	UpdatePrompt(promptID string, patch domain.PromptPatch) (domain.Prompt, error)
	DeletePrompt(promptID string) bool

	ProjectFiltered(searchTerm, categoryID string) view.Result
}

// CategoryUsage says how many tools and prompts are filed under a category.
type CategoryUsage struct {
	Tools   int `json:"tools"`
	Prompts int `json:"prompts"`
}

// CatalogService orchestrates catalog operations for the API.
type CatalogService struct {
	store     CatalogStore
	validator *validation.Validator
	logger    *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(s CatalogStore, v *validation.Validator, logger *slog.Logger) *CatalogService {
	if v == nil {
		v = validation.New()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &CatalogService{
		store:     s,
		validator: v,
		logger:    logger,
	}
}

// --- Categories ---

// ListCategories returns all categories in insertion order.
func (s *CatalogService) ListCategories(ctx context.Context) []domain.Category {
	return s.store.ListCategories()
}

// CreateCategory adds a category. The name is trimmed first.
func (s *CatalogService) CreateCategory(ctx context.Context, req CreateCategoryRequest) (domain.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return domain.Category{}, err
	}
	return s.store.AddCategory(req.Name)
}

// UpdateCategory renames a category.
func (s *CatalogService) UpdateCategory(ctx context.Context, categoryID string, req UpdateCategoryRequest) (domain.Category, error) {
	req.Name = trimPtr(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return domain.Category{}, err
	}
	return s.store.UpdateCategory(categoryID, domain.CategoryPatch{Name: req.Name})
}

// DeleteCategory removes a category and orphans its tools and prompts.
func (s *CatalogService) DeleteCategory(ctx context.Context, categoryID string) (store.CascadeResult, error) {
	result := s.store.DeleteCategory(categoryID)
	if !result.Found {
		return result, domainerrors.NotFoundf("category %s not found", categoryID)
	}
	return result, nil
}

// GetCategoryUsage reports what deleting the category would touch.
func (s *CatalogService) GetCategoryUsage(ctx context.Context, categoryID string) (CategoryUsage, error) {
	if _, err := s.store.GetCategory(categoryID); err != nil {
		return CategoryUsage{}, err
	}
	tools, prompts := s.store.CategoryUsage(categoryID)
	return CategoryUsage{Tools: tools, Prompts: prompts}, nil
}

// --- Tools ---

// ListTools returns all tools in insertion order.
func (s *CatalogService) ListTools(ctx context.Context) []domain.Tool {
	return s.store.ListTools()
}

// GetTool returns a tool by id.
func (s *CatalogService) GetTool(ctx context.Context, toolID string) (domain.Tool, error) {
	return s.store.GetTool(toolID)
}

// CreateTool validates and stores a new tool.
func (s *CatalogService) CreateTool(ctx context.Context, req CreateToolRequest) (domain.Tool, error) {
	req.normalize()
	if err := s.validator.Validate(req); err != nil {
		return domain.Tool{}, err
	}

	return s.store.AddTool(domain.Tool{
		Name:           req.Name,
		URL:            req.URL,
		Description:    req.Description,
		CategoryIDs:    req.CategoryIDs,
		PersonalRating: req.PersonalRating,
		Tags:           req.Tags,
	})
}

// UpdateTool merges the provided fields into a tool.
func (s *CatalogService) UpdateTool(ctx context.Context, toolID string, req UpdateToolRequest) (domain.Tool, error) {
	req.normalize()
	if err := s.validator.Validate(req); err != nil {
		return domain.Tool{}, err
	}

	return s.store.UpdateTool(toolID, domain.ToolPatch{
		Name:           req.Name,
		URL:            req.URL,
		Description:    req.Description,
		CategoryIDs:    req.CategoryIDs,
		PersonalRating: req.PersonalRating,
		Tags:           req.Tags,
	})
}

// DeleteTool removes a tool and all of its prompts.
func (s *CatalogService) DeleteTool(ctx context.Context, toolID string) (store.CascadeResult, error) {
	result := s.store.DeleteTool(toolID)
	if !result.Found {
		return result, domainerrors.NotFoundf("tool %s not found", toolID)
	}
	return result, nil
}

// --- Prompts ---

// ListPrompts returns every prompt, or only those owned by toolID when set.
func (s *CatalogService) ListPrompts(ctx context.Context, toolID string) []domain.Prompt {
	if toolID == "" {
		return s.store.ListPrompts()
	}
	prompts := s.store.PromptsForTool(toolID)
	if prompts == nil {
		prompts = []domain.Prompt{}
	}
	return prompts
}

// GetPrompt returns a prompt by id.
func (s *CatalogService) GetPrompt(ctx context.Context, promptID string) (domain.Prompt, error) {
	return s.store.GetPrompt(promptID)
}

// CreatePrompt validates and stores a new prompt. A prompt must be linked
// to a tool and filed under a category.
func (s *CatalogService) CreatePrompt(ctx context.Context, req CreatePromptRequest) (domain.Prompt, error) {
	req.ToolID = strings.TrimSpace(req.ToolID)
	req.CategoryID = strings.TrimSpace(req.CategoryID)

	if req.ToolID == "" {
		return domain.Prompt{}, domainerrors.ValidationWithDetails(
			"you must choose a tool to link the prompt to",
			map[string]string{"toolId": "is required"})
	}
	if req.CategoryID == "" {
		return domain.Prompt{}, domainerrors.ValidationWithDetails(
			"you must choose a category for the prompt",
			map[string]string{"categoryId": "is required"})
	}
	if err := s.validator.Validate(req); err != nil {
		return domain.Prompt{}, err
	}

	return s.store.AddPrompt(domain.Prompt{
		ToolID:         req.ToolID,
		Title:          req.Title,
		PromptText:     req.PromptText,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		PersonalRating: req.PersonalRating,
	})
}

// UpdatePrompt merges the provided fields into a prompt.
func (s *CatalogService) UpdatePrompt(ctx context.Context, promptID string, req UpdatePromptRequest) (domain.Prompt, error) {
	req.ToolID = trimPtr(req.ToolID)
	req.CategoryID = trimPtr(req.CategoryID)
	if err := s.validator.Validate(req); err != nil {
		return domain.Prompt{}, err
	}

	return s.store.UpdatePrompt(promptID, domain.PromptPatch{
		ToolID:         req.ToolID,
		Title:          req.Title,
		PromptText:     req.PromptText,
		Description:    req.Description,
		CategoryID:     req.CategoryID,
		PersonalRating: req.PersonalRating,
	})
}

// DeletePrompt removes a prompt.
func (s *CatalogService) DeletePrompt(ctx context.Context, promptID string) error {
	if !s.store.DeletePrompt(promptID) {
		return domainerrors.NotFoundf("prompt %s not found", promptID)
	}
	return nil
}

// --- View ---

// View returns the tools and prompts matching a search term and category
// selection. An empty categoryID selects every category.
func (s *CatalogService) View(ctx context.Context, searchTerm, categoryID string) view.Result {
	return s.store.ProjectFiltered(searchTerm, categoryID)
}
