package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoolsdash/dashboard/internal/ratelimit"
)

func TestRateLimit_RestoreEndpoints(t *testing.T) {
	limiter := ratelimit.New(0.001, 1)
	t.Cleanup(limiter.Stop)

	ts := newTestServer(t, false, Options{Version: "test", RestoreLimiter: limiter})

	resp := ts.api.Post("/api/v1/backups")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	resp = ts.api.Post("/api/v1/backups")
	require.Equal(t, http.StatusTooManyRequests, resp.Code, resp.Body.String())

	env := decodeEnvelope[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, codeRateLimited, env.Code)

	// Reads are never throttled.
	for range 3 {
		resp = ts.api.Get("/api/v1/backups")
		assert.Equal(t, http.StatusOK, resp.Code)
	}
}

func TestRateLimit_DisabledWithoutLimiter(t *testing.T) {
	ts := setupTestServerWithSearch(t, false)

	for range 3 {
		resp := ts.api.Post("/api/v1/backups")
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	}
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "192.0.2.1", clientIP("192.0.2.1:1234"))
	assert.Equal(t, "::1", clientIP("[::1]:8787"))
	assert.Equal(t, "10.0.0.7", clientIP("10.0.0.7"))
}
