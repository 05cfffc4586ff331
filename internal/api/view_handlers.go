package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// MessageResponse contains a simple message.
type MessageResponse struct {
	Message string `json:"message" doc:"Success message"`
}

// MessageOutput wraps the message response for Huma.
type MessageOutput struct {
	Body MessageResponse
}

func (s *Server) registerViewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getView",
		Method:      http.MethodGet,
		Path:        "/api/v1/view",
		Summary:     "Filtered dashboard view",
		Description: "Returns the tools and prompts matching a search term and category. " +
			"Matching is a case-insensitive substring test; an empty term matches everything.",
		Tags: []string{"View"},
	}, s.handleGetView)
}

// ViewInput contains the dashboard filter.
type ViewInput struct {
	Query    string `query:"q" doc:"Search term"`
	Category string `query:"category" doc:"Category ID, or 'all'"`
}

// ViewResponse holds the filtered collections.
type ViewResponse struct {
	Tools   []ToolResponse   `json:"tools" doc:"Matching tools in catalog order"`
	Prompts []PromptResponse `json:"prompts" doc:"Matching prompts in catalog order"`
}

// ViewOutput wraps the view response for Huma.
type ViewOutput struct {
	Body ViewResponse
}

func (s *Server) handleGetView(ctx context.Context, input *ViewInput) (*ViewOutput, error) {
	result := s.services.Catalog.View(ctx, input.Query, input.Category)
	return &ViewOutput{Body: ViewResponse{
		Tools:   toToolResponses(result.Tools),
		Prompts: toPromptResponses(result.Prompts),
	}}, nil
}
