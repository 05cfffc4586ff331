package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/service"
)

func (s *Server) registerToolRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listTools",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools",
		Summary:     "List tools",
		Description: "Returns all tools in catalog order",
		Tags:        []string{"Tools"},
	}, s.handleListTools)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createTool",
		Method:        http.MethodPost,
		Path:          "/api/v1/tools",
		Summary:       "Create tool",
		Description:   "Adds a tool. Tags may be sent as a list, a comma-separated string, or both.",
		Tags:          []string{"Tools"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "getTool",
		Method:      http.MethodGet,
		Path:        "/api/v1/tools/{id}",
		Summary:     "Get tool",
		Tags:        []string{"Tools"},
	}, s.handleGetTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateTool",
		Method:      http.MethodPatch,
		Path:        "/api/v1/tools/{id}",
		Summary:     "Update tool",
		Description: "Merges the provided fields into the tool",
		Tags:        []string{"Tools"},
	}, s.handleUpdateTool)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteTool",
		Method:      http.MethodDelete,
		Path:        "/api/v1/tools/{id}",
		Summary:     "Delete tool",
		Description: "Deletes a tool and every prompt written for it",
		Tags:        []string{"Tools"},
	}, s.handleDeleteTool)
}

// === DTOs ===

// ToolResponse contains tool data in API responses.
type ToolResponse struct {
	ID             string   `json:"id" doc:"Tool ID"`
	Name           string   `json:"name" doc:"Tool name"`
	URL            string   `json:"url" doc:"Tool homepage"`
	Description    string   `json:"description" doc:"Free-form description"`
	CategoryIDs    []string `json:"categoryIds" doc:"Categories the tool is filed under"`
	PersonalRating int      `json:"personal_rating" doc:"Rating from 0 to 5"`
	Tags           []string `json:"tags" doc:"Tags"`
}

// ListToolsResponse contains a list of tools.
type ListToolsResponse struct {
	Tools []ToolResponse `json:"tools" doc:"Tools in catalog order"`
}

// ListToolsOutput wraps the list tools response for Huma.
type ListToolsOutput struct {
	Body ListToolsResponse
}

// CreateToolRequest is the request body for creating a tool.
type CreateToolRequest struct {
	Name           string   `json:"name" doc:"Tool name"`
	URL            string   `json:"url" doc:"Tool homepage (http or https)"`
	Description    string   `json:"description,omitempty" doc:"Free-form description"`
	CategoryIDs    []string `json:"categoryIds,omitempty" doc:"Existing category IDs"`
	PersonalRating int      `json:"personal_rating,omitempty" doc:"Rating from 0 to 5"`
	Tags           []string `json:"tags,omitempty" doc:"Tags as a list"`
	TagsInput      string   `json:"tagsInput,omitempty" doc:"Tags as a comma-separated string"`
}

// CreateToolInput wraps the create tool request for Huma.
type CreateToolInput struct {
	Body CreateToolRequest
}

// ToolOutput wraps the tool response for Huma.
type ToolOutput struct {
	Body ToolResponse
}

// ToolIDInput identifies a tool by path.
type ToolIDInput struct {
	ID string `path:"id" doc:"Tool ID"`
}

// UpdateToolRequest is the request body for updating a tool.
type UpdateToolRequest struct {
	Name           *string   `json:"name,omitempty" doc:"Tool name"`
	URL            *string   `json:"url,omitempty" doc:"Tool homepage"`
	Description    *string   `json:"description,omitempty" doc:"Free-form description"`
	CategoryIDs    *[]string `json:"categoryIds,omitempty" doc:"Replacement category IDs"`
	PersonalRating *int      `json:"personal_rating,omitempty" doc:"Rating from 0 to 5"`
	Tags           *[]string `json:"tags,omitempty" doc:"Replacement tags"`
	TagsInput      *string   `json:"tagsInput,omitempty" doc:"Replacement tags as a comma-separated string"`
}

// UpdateToolInput wraps the update tool request for Huma.
type UpdateToolInput struct {
	ID   string `path:"id" doc:"Tool ID"`
	Body UpdateToolRequest
}

// DeleteToolResponse reports what a tool delete removed.
type DeleteToolResponse struct {
	PromptsDeleted []string `json:"prompts_deleted" doc:"IDs of prompts removed with the tool"`
}

// DeleteToolOutput wraps the delete tool response for Huma.
type DeleteToolOutput struct {
	Body DeleteToolResponse
}

// === Handlers ===

func (s *Server) handleListTools(ctx context.Context, _ *struct{}) (*ListToolsOutput, error) {
	tools := s.services.Catalog.ListTools(ctx)
	return &ListToolsOutput{Body: ListToolsResponse{Tools: toToolResponses(tools)}}, nil
}

func (s *Server) handleCreateTool(ctx context.Context, input *CreateToolInput) (*ToolOutput, error) {
	body := input.Body
	t, err := s.services.Catalog.CreateTool(ctx, service.CreateToolRequest{
		Name:           body.Name,
		URL:            body.URL,
		Description:    body.Description,
		CategoryIDs:    body.CategoryIDs,
		PersonalRating: body.PersonalRating,
		Tags:           body.Tags,
		TagsInput:      body.TagsInput,
	})
	if err != nil {
		return nil, err
	}
	return &ToolOutput{Body: toToolResponse(t)}, nil
}

func (s *Server) handleGetTool(ctx context.Context, input *ToolIDInput) (*ToolOutput, error) {
	t, err := s.services.Catalog.GetTool(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return &ToolOutput{Body: toToolResponse(t)}, nil
}

func (s *Server) handleUpdateTool(ctx context.Context, input *UpdateToolInput) (*ToolOutput, error) {
	body := input.Body
	t, err := s.services.Catalog.UpdateTool(ctx, input.ID, service.UpdateToolRequest{
		Name:           body.Name,
		URL:            body.URL,
		Description:    body.Description,
		CategoryIDs:    body.CategoryIDs,
		PersonalRating: body.PersonalRating,
		Tags:           body.Tags,
		TagsInput:      body.TagsInput,
	})
	if err != nil {
		return nil, err
	}
	return &ToolOutput{Body: toToolResponse(t)}, nil
}

func (s *Server) handleDeleteTool(ctx context.Context, input *ToolIDInput) (*DeleteToolOutput, error) {
	res, err := s.services.Catalog.DeleteTool(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	deleted := res.PromptsDeleted
	if deleted == nil {
		deleted = []string{}
	}
	return &DeleteToolOutput{Body: DeleteToolResponse{PromptsDeleted: deleted}}, nil
}

func toToolResponse(t domain.Tool) ToolResponse {
	return ToolResponse{
		ID:             t.ID,
		Name:           t.Name,
		URL:            t.URL,
		Description:    t.Description,
		CategoryIDs:    nonNil(t.CategoryIDs),
		PersonalRating: t.PersonalRating,
		Tags:           nonNil(t.Tags),
	}
}

func toToolResponses(tools []domain.Tool) []ToolResponse {
	resp := make([]ToolResponse, len(tools))
	for i, t := range tools {
		resp[i] = toToolResponse(t)
	}
	return resp
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
