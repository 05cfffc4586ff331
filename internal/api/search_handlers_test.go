package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_RanksNameMatches(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.createCategory(t, "Writing")
	claude := ts.createTool(t, map[string]any{
		"name":        "Claude",
		"url":         "https://claude.ai",
		"description": "General assistant",
	})
	ts.createTool(t, map[string]any{
		"name":        "Notion AI",
		"url":         "https://notion.so",
		"description": "Works well next to Claude",
	})
	ts.createPrompt(t, map[string]any{
		"toolId":     claude,
		"categoryId": catID,
		"title":      "Summarize a meeting",
		"promptText": "Summarize the transcript",
	})

	resp := ts.api.Get("/api/v1/search?q=claude")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	res := decodeEnvelope[SearchResponse](t, resp).Data
	require.NotEmpty(t, res.Hits)
	assert.Equal(t, claude, res.Hits[0].ID)
	assert.Equal(t, "tool", res.Hits[0].Type)
}

func TestSearch_TypeFilter(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.createCategory(t, "Writing")
	toolID := ts.createTool(t, map[string]any{"name": "Summarizer", "url": "https://s.io"})
	promptID := ts.createPrompt(t, map[string]any{
		"toolId":     toolID,
		"categoryId": catID,
		"title":      "Summarizer prompt",
		"promptText": "Summarize this",
	})

	resp := ts.api.Get("/api/v1/search?q=summarizer&types=prompt")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	res := decodeEnvelope[SearchResponse](t, resp).Data
	require.Len(t, res.Hits, 1)
	assert.Equal(t, promptID, res.Hits[0].ID)
	assert.Equal(t, toolID, res.Hits[0].ToolID)
	assert.Equal(t, "Summarizer", res.Hits[0].ToolName)
}

func TestSearch_FollowsMutations(t *testing.T) {
	ts := setupTestServer(t)
	toolID := ts.createTool(t, map[string]any{"name": "Perplexity", "url": "https://perplexity.ai"})

	resp := ts.api.Delete("/api/v1/tools/" + toolID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/search?q=perplexity")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, decodeEnvelope[SearchResponse](t, resp).Data.Hits)
}

func TestSearch_UnknownType(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?q=x&types=book")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decodeEnvelope[any](t, resp).Code)
}

func TestSearch_LimitOutOfRange(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/search?q=x&limit=1000")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestSearch_Disabled(t *testing.T) {
	ts := setupTestServerWithSearch(t, false)

	resp := ts.api.Get("/api/v1/search?q=x")
	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	assert.Equal(t, "UNAVAILABLE", decodeEnvelope[any](t, resp).Code)
}
