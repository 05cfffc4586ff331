package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "search",
		Method:      http.MethodGet,
		Path:        "/api/v1/search",
		Summary:     "Ranked search",
		Description: "Full-text search over tools and prompts with fuzzy name matching. " +
			"Returns 503 when search is disabled.",
		Tags: []string{"Search"},
	}, s.handleSearch)
}

// SearchInput contains search query parameters.
type SearchInput struct {
	Query string `query:"q" doc:"Search query; empty lists everything"`
	Types string `query:"types" doc:"Comma-separated document types: tool, prompt"`
	Limit int    `query:"limit" default:"20" minimum:"1" maximum:"100" doc:"Maximum number of hits"`
}

// SearchHitResponse is a single ranked hit.
type SearchHitResponse struct {
	ID         string            `json:"id" doc:"Tool or prompt ID"`
	Type       string            `json:"type" doc:"Document type: tool or prompt"`
	Score      float64           `json:"score" doc:"Relevance score"`
	Name       string            `json:"name" doc:"Tool name or prompt title"`
	ToolID     string            `json:"tool_id,omitempty" doc:"Owning tool, for prompts"`
	ToolName   string            `json:"tool_name,omitempty" doc:"Owning tool name, for prompts"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Matched fragments by field"`
}

// SearchResponse contains search results.
type SearchResponse struct {
	Query  string              `json:"query" doc:"The query as executed"`
	Total  uint64              `json:"total" doc:"Total matching documents"`
	TookMs int64               `json:"took_ms" doc:"Query time in milliseconds"`
	Hits   []SearchHitResponse `json:"hits" doc:"Hits, best first"`
}

// SearchOutput wraps the search response for Huma.
type SearchOutput struct {
	Body SearchResponse
}

func (s *Server) handleSearch(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	result, err := s.services.Search.Search(ctx, input.Query, input.Types, input.Limit)
	if err != nil {
		return nil, err
	}

	hits := make([]SearchHitResponse, len(result.Hits))
	for i, h := range result.Hits {
		hits[i] = SearchHitResponse{
			ID:         h.ID,
			Type:       string(h.Type),
			Score:      h.Score,
			Name:       h.Name,
			ToolID:     h.ToolID,
			ToolName:   h.ToolName,
			Highlights: h.Highlights,
		}
	}

	return &SearchOutput{Body: SearchResponse{
		Query:  result.Query,
		Total:  result.Total,
		TookMs: result.TookMs,
		Hits:   hits,
	}}, nil
}
