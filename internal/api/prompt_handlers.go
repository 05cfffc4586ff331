package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/service"
)

func (s *Server) registerPromptRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listPrompts",
		Method:      http.MethodGet,
		Path:        "/api/v1/prompts",
		Summary:     "List prompts",
		Description: "Returns all prompts, or only those of one tool",
		Tags:        []string{"Prompts"},
	}, s.handleListPrompts)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createPrompt",
		Method:        http.MethodPost,
		Path:          "/api/v1/prompts",
		Summary:       "Create prompt",
		Description:   "Adds a prompt to an existing tool",
		Tags:          []string{"Prompts"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreatePrompt)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPrompt",
		Method:      http.MethodGet,
		Path:        "/api/v1/prompts/{id}",
		Summary:     "Get prompt",
		Tags:        []string{"Prompts"},
	}, s.handleGetPrompt)

	huma.Register(s.api, huma.Operation{
		OperationID: "updatePrompt",
		Method:      http.MethodPatch,
		Path:        "/api/v1/prompts/{id}",
		Summary:     "Update prompt",
		Description: "Merges the provided fields into the prompt",
		Tags:        []string{"Prompts"},
	}, s.handleUpdatePrompt)

	huma.Register(s.api, huma.Operation{
		OperationID: "deletePrompt",
		Method:      http.MethodDelete,
		Path:        "/api/v1/prompts/{id}",
		Summary:     "Delete prompt",
		Tags:        []string{"Prompts"},
	}, s.handleDeletePrompt)
}

// === DTOs ===

// PromptResponse contains prompt data in API responses.
type PromptResponse struct {
	ID             string `json:"id" doc:"Prompt ID"`
	ToolID         string `json:"toolId" doc:"Owning tool ID"`
	Title          string `json:"title" doc:"Prompt title"`
	PromptText     string `json:"promptText" doc:"Prompt body"`
	Description    string `json:"description" doc:"Free-form description"`
	CategoryID     string `json:"categoryId" doc:"Category ID, empty when uncategorized"`
	PersonalRating int    `json:"personal_rating" doc:"Rating from 0 to 5"`
}

// ListPromptsInput contains parameters for listing prompts.
type ListPromptsInput struct {
	ToolID string `query:"toolId" doc:"Only prompts of this tool"`
}

// ListPromptsResponse contains a list of prompts.
type ListPromptsResponse struct {
	Prompts []PromptResponse `json:"prompts" doc:"Prompts in catalog order"`
}

// ListPromptsOutput wraps the list prompts response for Huma.
type ListPromptsOutput struct {
	Body ListPromptsResponse
}

// CreatePromptRequest is the request body for creating a prompt.
// Tool and category are checked by the service so the caller gets a
// readable message rather than a schema error.
type CreatePromptRequest struct {
	ToolID         string `json:"toolId" required:"false" doc:"Owning tool ID"`
	CategoryID     string `json:"categoryId" required:"false" doc:"Category ID"`
	Title          string `json:"title" doc:"Prompt title"`
	PromptText     string `json:"promptText" doc:"Prompt body"`
	Description    string `json:"description,omitempty" doc:"Free-form description"`
	PersonalRating int    `json:"personal_rating,omitempty" doc:"Rating from 0 to 5"`
}

// CreatePromptInput wraps the create prompt request for Huma.
type CreatePromptInput struct {
	Body CreatePromptRequest
}

// PromptOutput wraps the prompt response for Huma.
type PromptOutput struct {
	Body PromptResponse
}

// PromptIDInput identifies a prompt by path.
type PromptIDInput struct {
	ID string `path:"id" doc:"Prompt ID"`
}

// UpdatePromptRequest is the request body for updating a prompt.
type UpdatePromptRequest struct {
	ToolID         *string `json:"toolId,omitempty" doc:"Move the prompt to this tool"`
	CategoryID     *string `json:"categoryId,omitempty" doc:"Category ID"`
	Title          *string `json:"title,omitempty" doc:"Prompt title"`
	PromptText     *string `json:"promptText,omitempty" doc:"Prompt body"`
	Description    *string `json:"description,omitempty" doc:"Free-form description"`
	PersonalRating *int    `json:"personal_rating,omitempty" doc:"Rating from 0 to 5"`
}

// UpdatePromptInput wraps the update prompt request for Huma.
type UpdatePromptInput struct {
	ID   string `path:"id" doc:"Prompt ID"`
	Body UpdatePromptRequest
}

// === Handlers ===

func (s *Server) handleListPrompts(ctx context.Context, input *ListPromptsInput) (*ListPromptsOutput, error) {
	prompts := s.services.Catalog.ListPrompts(ctx, input.ToolID)
	return &ListPromptsOutput{Body: ListPromptsResponse{Prompts: toPromptResponses(prompts)}}, nil
}

func (s *Server) handleCreatePrompt(ctx context.Context, input *CreatePromptInput) (*PromptOutput, error) {
	body := input.Body
	p, err := s.services.Catalog.CreatePrompt(ctx, service.CreatePromptRequest{
		ToolID:         body.ToolID,
		CategoryID:     body.CategoryID,
		Title:          body.Title,
		PromptText:     body.PromptText,
		Description:    body.Description,
		PersonalRating: body.PersonalRating,
	})
	if err != nil {
		return nil, err
	}
	return &PromptOutput{Body: toPromptResponse(p)}, nil
}

func (s *Server) handleGetPrompt(ctx context.Context, input *PromptIDInput) (*PromptOutput, error) {
	p, err := s.services.Catalog.GetPrompt(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &PromptOutput{Body: toPromptResponse(p)}, nil
}

func (s *Server) handleUpdatePrompt(ctx context.Context, input *UpdatePromptInput) (*PromptOutput, error) {
	body := input.Body
	p, err := s.services.Catalog.UpdatePrompt(ctx, input.ID, service.UpdatePromptRequest{
		ToolID:         body.ToolID,
		CategoryID:     body.CategoryID,
		Title:          body.Title,
		PromptText:     body.PromptText,
		Description:    body.Description,
		PersonalRating: body.PersonalRating,
	})
	if err != nil {
		return nil, err
	}
	return &PromptOutput{Body: toPromptResponse(p)}, nil
}

func (s *Server) handleDeletePrompt(ctx context.Context, input *PromptIDInput) (*MessageOutput, error) {
	if err := s.services.Catalog.DeletePrompt(ctx, input.ID); err != nil {
		return nil, err
	}
	return &MessageOutput{Body: MessageResponse{Message: "Prompt deleted"}}, nil
}

func toPromptResponse(p domain.Prompt) PromptResponse {
	return PromptResponse{
		ID:             p.ID,
		ToolID:         p.ToolID,
		Title:          p.Title,
		PromptText:     p.PromptText,
		Description:    p.Description,
		CategoryID:     p.CategoryID,
		PersonalRating: p.PersonalRating,
	}
}

func toPromptResponses(prompts []domain.Prompt) []PromptResponse {
	resp := make([]PromptResponse, len(prompts))
	for i, p := range prompts {
		resp[i] = toPromptResponse(p)
	}
	return resp
}
