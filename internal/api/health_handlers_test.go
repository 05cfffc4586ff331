package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoolsdash/dashboard/internal/backup"
	"github.com/aitoolsdash/dashboard/internal/kv"
	"github.com/aitoolsdash/dashboard/internal/service"
	"github.com/aitoolsdash/dashboard/internal/store"
)

func TestHealthCheck_Healthy(t *testing.T) {
	ts := setupTestServer(t)
	ts.createTool(t, map[string]any{"name": "Claude", "url": "https://claude.ai"})

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decodeEnvelope[HealthResponse](t, resp).Data
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "healthy", health.Components["storage"].Status)
	assert.Equal(t, "healthy", health.Components["search"].Status)
	assert.Equal(t, "1 documents indexed", health.Components["search"].Message)
}

func TestHealthCheck_DegradedAfterWriteFailure(t *testing.T) {
	ts := setupTestServer(t)
	ts.backend.FailWrites(errors.New("disk full"))

	// The mutation succeeds in memory; only the write fails.
	ts.createCategory(t, "Writing")

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decodeEnvelope[HealthResponse](t, resp).Data
	assert.Equal(t, "degraded", health.Status)
	assert.Contains(t, health.Components["storage"].Message, "disk full")
}

func TestHealthCheck_DegradedAfterReadFailure(t *testing.T) {
	backend := kv.NewMemory()
	backend.FailReads(store.KeyTools, errors.New("i/o error"))

	st, err := store.Open(backend, nil)
	require.NoError(t, err)

	s := NewServer(st, &Services{
		Catalog: service.NewCatalogService(st, nil, nil),
		Search:  service.NewSearchService(nil, nil),
		Backup:  backup.NewService(st, t.TempDir(), nil),
	}, Options{Version: "test"}, nil)
	api := humatest.Wrap(t, s.API())

	resp := api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decodeEnvelope[HealthResponse](t, resp).Data
	assert.Equal(t, "degraded", health.Status)
	assert.Contains(t, health.Components["storage"].Message, store.KeyTools)
}

func TestHealthCheck_SearchDisabled(t *testing.T) {
	ts := setupTestServerWithSearch(t, false)

	resp := ts.api.Get("/health")
	require.Equal(t, http.StatusOK, resp.Code)

	health := decodeEnvelope[HealthResponse](t, resp).Data
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "search disabled", health.Components["search"].Message)
}

func TestWorse(t *testing.T) {
	assert.Equal(t, "degraded", worse("healthy", "degraded"))
	assert.Equal(t, "unhealthy", worse("degraded", "unhealthy"))
	assert.Equal(t, "degraded", worse("degraded", "healthy"))
}
