package providers

import (
	"github.com/samber/do/v2"

	"github.com/aitoolsdash/dashboard/internal/config"
	"github.com/aitoolsdash/dashboard/internal/logger"
	"github.com/aitoolsdash/dashboard/internal/search"
	"github.com/aitoolsdash/dashboard/internal/service"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// SearchIndexHandle wraps the search index with shutdown capability.
// Index is nil when search is disabled.
type SearchIndexHandle struct {
	*search.Index
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	if h.Index == nil {
		return nil
	}
	return h.Close()
}

// ProvideSearchIndex provides the Bleve index and attaches it to the store,
// which rebuilds it from the current catalog.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Search.Enabled {
		log.Info("Search disabled by configuration")
		return &SearchIndexHandle{}, nil
	}

	st := do.MustInvoke[*store.Store](i)

	index, err := search.NewIndex(search.Options{Logger: log.WithComponent("search")})
	if err != nil {
		return nil, err
	}
	st.SetSearchIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{Index: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(indexHandle.Index, log.WithComponent("search")), nil
}
