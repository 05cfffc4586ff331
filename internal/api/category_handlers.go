package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/service"
)

func (s *Server) registerCategoryRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCategories",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories",
		Summary:     "List categories",
		Description: "Returns all categories in creation order",
		Tags:        []string{"Categories"},
	}, s.handleListCategories)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createCategory",
		Method:        http.MethodPost,
		Path:          "/api/v1/categories",
		Summary:       "Create category",
		Description:   "Creates a category. Names must be unique.",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateCategory",
		Method:      http.MethodPatch,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Rename category",
		Tags:        []string{"Categories"},
	}, s.handleUpdateCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteCategory",
		Method:      http.MethodDelete,
		Path:        "/api/v1/categories/{id}",
		Summary:     "Delete category",
		Description: "Deletes a category, removes it from tools and uncategorizes its prompts",
		Tags:        []string{"Categories"},
	}, s.handleDeleteCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCategoryUsage",
		Method:      http.MethodGet,
		Path:        "/api/v1/categories/{id}/usage",
		Summary:     "Get category usage",
		Description: "Counts the tools and prompts a delete would touch",
		Tags:        []string{"Categories"},
	}, s.handleGetCategoryUsage)
}

// === DTOs ===

// CategoryResponse contains category data in API responses.
type CategoryResponse struct {
	ID   string `json:"id" doc:"Category ID"`
	Name string `json:"name" doc:"Category name"`
}

// ListCategoriesResponse contains a list of categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories" doc:"Categories in creation order"`
}

// ListCategoriesOutput wraps the list categories response for Huma.
type ListCategoriesOutput struct {
	Body ListCategoriesResponse
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" maxLength:"100" doc:"Category name"`
}

// CreateCategoryInput wraps the create category request for Huma.
type CreateCategoryInput struct {
	Body CreateCategoryRequest
}

// CategoryOutput wraps the category response for Huma.
type CategoryOutput struct {
	Body CategoryResponse
}

// UpdateCategoryRequest is the request body for renaming a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" maxLength:"100" doc:"New category name"`
}

// UpdateCategoryInput wraps the update category request for Huma.
type UpdateCategoryInput struct {
	ID   string `path:"id" doc:"Category ID"`
	Body UpdateCategoryRequest
}

// CategoryIDInput identifies a category by path.
type CategoryIDInput struct {
	ID string `path:"id" doc:"Category ID"`
}

// DeleteCategoryResponse reports what a category delete changed.
type DeleteCategoryResponse struct {
	ToolsUpdated int `json:"tools_updated" doc:"Tools that lost the category"`
	PromptsReset int `json:"prompts_reset" doc:"Prompts that became uncategorized"`
}

// DeleteCategoryOutput wraps the delete category response for Huma.
type DeleteCategoryOutput struct {
	Body DeleteCategoryResponse
}

// CategoryUsageResponse counts references to a category.
type CategoryUsageResponse struct {
	Tools   int `json:"tools" doc:"Tools filed under the category"`
	Prompts int `json:"prompts" doc:"Prompts filed under the category"`
}

// CategoryUsageOutput wraps the category usage response for Huma.
type CategoryUsageOutput struct {
	Body CategoryUsageResponse
}

// === Handlers ===

func (s *Server) handleListCategories(ctx context.Context, _ *struct{}) (*ListCategoriesOutput, error) {
	categories := s.services.Catalog.ListCategories(ctx)

	resp := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		resp[i] = toCategoryResponse(c)
	}
	return &ListCategoriesOutput{Body: ListCategoriesResponse{Categories: resp}}, nil
}

func (s *Server) handleCreateCategory(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error) {
	c, err := s.services.Catalog.CreateCategory(ctx, service.CreateCategoryRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}
	return &CategoryOutput{Body: toCategoryResponse(c)}, nil
}

func (s *Server) handleUpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error) {
	c, err := s.services.Catalog.UpdateCategory(ctx, input.ID, service.UpdateCategoryRequest{
		Name: input.Body.Name,
	})
	if err != nil {
		return nil, err
	}
	return &CategoryOutput{Body: toCategoryResponse(c)}, nil
}

func (s *Server) handleDeleteCategory(ctx context.Context, input *CategoryIDInput) (*DeleteCategoryOutput, error) {
	res, err := s.services.Catalog.DeleteCategory(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &DeleteCategoryOutput{Body: DeleteCategoryResponse{
		ToolsUpdated: res.ToolsUpdated,
		PromptsReset: res.PromptsReset,
	}}, nil
}

func (s *Server) handleGetCategoryUsage(ctx context.Context, input *CategoryIDInput) (*CategoryUsageOutput, error) {
	usage, err := s.services.Catalog.GetCategoryUsage(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &CategoryUsageOutput{Body: CategoryUsageResponse{
		Tools:   usage.Tools,
		Prompts: usage.Prompts,
	}}, nil
}

func toCategoryResponse(c domain.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name}
}
