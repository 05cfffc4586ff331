package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// DefaultLimit is used when Params.Limit is not positive.
const DefaultLimit = 20

// Params configures a search query.
type Params struct {
	Query string    // User's search query
	Types []DocType // Document types to include (empty = all)

	Limit     int
	Highlight bool // Include match highlighting
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID         string            `json:"id"`
	Type       DocType           `json:"type"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	ToolID     string            `json:"tool_id,omitempty"`
	ToolName   string            `json:"tool_name,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a search query. Hits are ordered by relevance.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildSearchQuery(params), limit, 0, false)
	searchRequest.SortBy([]string{"-_score", "_id"})
	searchRequest.Fields = []string{"id", "type", "name", "tool_id", "tool_name"}

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("name")
		searchRequest.Highlight.AddField("description")
		searchRequest.Highlight.AddField("prompt_text")
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{Score: hit.Score}
		if v, ok := hit.Fields["id"].(string); ok {
			h.ID = v
		}
		if v, ok := hit.Fields["type"].(string); ok {
			h.Type = DocType(v)
		}
		if v, ok := hit.Fields["name"].(string); ok {
			h.Name = v
		}
		if v, ok := hit.Fields["tool_id"].(string); ok {
			h.ToolID = v
		}
		if v, ok := hit.Fields["tool_name"].(string); ok {
			h.ToolName = v
		}

		if len(hit.Fragments) > 0 {
			h.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					h.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params Params) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		textQueries := []query.Query{}

		nameMatch := bleve.NewMatchQuery(q)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		textQueries = append(textQueries, nameMatch)

		toolNameMatch := bleve.NewMatchQuery(q)
		toolNameMatch.SetField("tool_name")
		toolNameMatch.SetBoost(1.5)
		textQueries = append(textQueries, toolNameMatch)

		descMatch := bleve.NewMatchQuery(q)
		descMatch.SetField("description")
		textQueries = append(textQueries, descMatch)

		promptTextMatch := bleve.NewMatchQuery(q)
		promptTextMatch.SetField("prompt_text")
		textQueries = append(textQueries, promptTextMatch)

		tagMatch := bleve.NewTermQuery(strings.ToLower(q))
		tagMatch.SetField("tags")
		tagMatch.SetBoost(2.0)
		textQueries = append(textQueries, tagMatch)

		// Typo tolerance on names
		fuzzyQuery := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("name")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		// Prefix query for autocomplete (minimum 2 chars)
		if len(q) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(q))
			prefixQuery.SetField("name")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	if len(params.Types) > 0 {
		typeQueries := make([]query.Query, len(params.Types))
		for i, t := range params.Types {
			tq := bleve.NewTermQuery(string(t))
			tq.SetField("type")
			typeQueries[i] = tq
		}
		queries = append(queries, bleve.NewDisjunctionQuery(typeQueries...))
	}

	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// ParseTypes converts a comma-separated list ("tool,prompt") to doc types.
// Unknown names are rejected.
func ParseTypes(s string) ([]DocType, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var types []DocType
	for part := range strings.SplitSeq(s, ",") {
		switch t := DocType(strings.TrimSpace(part)); t {
		case DocTypeTool, DocTypePrompt:
			types = append(types, t)
		default:
			return nil, fmt.Errorf("unknown search type %q", part)
		}
	}
	return types, nil
}
