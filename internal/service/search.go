package service

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "github.com/aitoolsdash/dashboard/internal/errors"
	"github.com/aitoolsdash/dashboard/internal/search"
)

// MaxSearchLimit caps the number of hits a single query returns.
const MaxSearchLimit = 100

// SearchService runs ranked queries against the catalog index.
// A nil index means search is switched off.
type SearchService struct {
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service. index may be nil.
func NewSearchService(index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		logger: logger,
	}
}

// Enabled reports whether an index is attached.
func (s *SearchService) Enabled() bool {
	return s.index != nil
}

// Search runs a query. types is a comma-separated list of "tool" and
// "prompt"; empty means both.
func (s *SearchService) Search(ctx context.Context, query, types string, limit int) (*search.Result, error) {
	if s.index == nil {
		return nil, domainerrors.Unavailable("search is disabled")
	}

	docTypes, err := search.ParseTypes(types)
	if err != nil {
		return nil, domainerrors.Validation(err.Error())
	}

	params := search.Params{
		Query:     strings.TrimSpace(query),
		Types:     docTypes,
		Limit:     min(limit, MaxSearchLimit),
		Highlight: true,
	}
	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "search failed")
	}

	if s.logger != nil {
		s.logger.Debug("search", "query", params.Query, "hits", len(result.Hits), "took_ms", result.TookMs)
	}
	return result, nil
}

// IndexedDocuments returns the number of documents in the index.
func (s *SearchService) IndexedDocuments() (uint64, error) {
	if s.index == nil {
		return 0, domainerrors.Unavailable("search is disabled")
	}
	return s.index.DocumentCount()
}
