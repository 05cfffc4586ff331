package api

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoolsdash/dashboard/internal/backup"
)

func TestExportImport_RoundTrip(t *testing.T) {
	ts := setupTestServer(t)
	catID := ts.createCategory(t, "Writing")
	toolID := ts.createTool(t, map[string]any{
		"name":        "Claude",
		"url":         "https://claude.ai",
		"categoryIds": []string{catID},
	})
	ts.createPrompt(t, map[string]any{
		"toolId":     toolID,
		"categoryId": catID,
		"title":      "T",
		"promptText": "P",
	})

	resp := ts.api.Get("/api/v1/backup")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Header().Get("Content-Disposition"), "attachment")

	doc := decodeEnvelope[backup.Document](t, resp).Data
	assert.Equal(t, backup.FormatVersion, doc.Version)
	assert.Equal(t, backup.EntityCounts{Categories: 1, Tools: 1, Prompts: 1}, doc.Counts)

	// Wipe by deleting, then restore the export.
	require.Equal(t, http.StatusOK, ts.api.Delete("/api/v1/tools/"+toolID).Code)
	require.Equal(t, http.StatusOK, ts.api.Delete("/api/v1/categories/"+catID).Code)

	resp = ts.api.Post("/api/v1/backup", doc)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	res := decodeEnvelope[RestoreResponse](t, resp).Data
	assert.Equal(t, EntityCountsResponse{Categories: 1, Tools: 1, Prompts: 1}, res.Imported)
	assert.False(t, res.DryRun)

	resp = ts.api.Get("/api/v1/prompts")
	assert.Len(t, decodeEnvelope[ListPromptsResponse](t, resp).Data.Prompts, 1)
}

func TestImport_DryRun(t *testing.T) {
	ts := setupTestServer(t)
	ts.createTool(t, map[string]any{"name": "Claude", "url": "https://claude.ai"})

	empty := map[string]any{
		"id":          "00000000-0000-0000-0000-000000000001",
		"version":     backup.FormatVersion,
		"exported_at": "2026-01-01T00:00:00Z",
		"categories":  []any{},
		"tools":       []any{},
		"prompts":     []any{},
	}
	resp := ts.api.Post("/api/v1/backup?dry_run=true", empty)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.True(t, decodeEnvelope[RestoreResponse](t, resp).Data.DryRun)

	resp = ts.api.Get("/api/v1/tools")
	assert.Len(t, decodeEnvelope[ListToolsResponse](t, resp).Data.Tools, 1)
}

func TestImport_Rejections(t *testing.T) {
	tests := []struct {
		name string
		path string
		body any
		want int
	}{
		{
			name: "malformed json",
			path: "/api/v1/backup",
			body: strings.NewReader("{not json"),
			want: http.StatusBadRequest,
		},
		{
			name: "future major version",
			path: "/api/v1/backup",
			body: map[string]any{"id": "x", "version": "2.0", "tools": []any{}},
			want: http.StatusBadRequest,
		},
		{
			name: "prompt with unknown tool",
			path: "/api/v1/backup",
			body: map[string]any{
				"id":      "x",
				"version": backup.FormatVersion,
				"prompts": []map[string]any{{"id": "prompt-1", "toolId": "tool-9", "title": "T"}},
			},
			want: http.StatusBadRequest,
		},
		{
			name: "unknown mode",
			path: "/api/v1/backup?mode=wipe",
			body: map[string]any{"id": "x", "version": backup.FormatVersion},
			want: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := setupTestServer(t)

			resp := ts.api.Post(tt.path, "Content-Type: application/json", tt.body)
			assert.Equal(t, tt.want, resp.Code, resp.Body.String())
			assert.Equal(t, "VALIDATION", decodeEnvelope[any](t, resp).Code)
		})
	}
}

func TestImport_MergeKeepsLocal(t *testing.T) {
	ts := setupTestServer(t)
	toolID := ts.createTool(t, map[string]any{"name": "Local", "url": "https://local.io"})

	doc := map[string]any{
		"id":      "00000000-0000-0000-0000-000000000002",
		"version": backup.FormatVersion,
		"tools": []map[string]any{
			{"id": toolID, "name": "Remote", "url": "https://remote.io"},
			{"id": "tool-99", "name": "Extra", "url": "https://extra.io"},
		},
	}
	resp := ts.api.Post("/api/v1/backup?mode=merge&merge_strategy=keep_local", doc)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	res := decodeEnvelope[RestoreResponse](t, resp).Data
	assert.Equal(t, 1, res.Imported.Tools)
	assert.Equal(t, 1, res.Skipped.Tools)

	resp = ts.api.Get("/api/v1/tools/" + toolID)
	assert.Equal(t, "Local", decodeEnvelope[ToolResponse](t, resp).Data.Name)
}

func TestValidateBackupDocument(t *testing.T) {
	ts := setupTestServer(t)

	doc := map[string]any{
		"id":      "x",
		"version": backup.FormatVersion,
		"tools": []map[string]any{
			{"id": "tool-1", "name": "A", "url": "https://a.io", "categoryIds": []string{"cat-gone"}},
		},
	}
	resp := ts.api.Post("/api/v1/backup/validate", doc)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	v := decodeEnvelope[ValidationResponse](t, resp).Data
	assert.True(t, v.Valid)
	assert.Equal(t, 1, v.ExpectedCounts.Tools)
	assert.NotEmpty(t, v.Warnings)
}

func TestBackupFiles_Lifecycle(t *testing.T) {
	ts := setupTestServer(t)
	ts.createTool(t, map[string]any{"name": "Claude", "url": "https://claude.ai"})

	resp := ts.api.Post("/api/v1/backups")
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	created := decodeEnvelope[BackupResponse](t, resp).Data
	assert.NotEmpty(t, created.ID)
	assert.NotEmpty(t, created.Checksum)
	assert.Positive(t, created.Size)

	resp = ts.api.Get("/api/v1/backups")
	require.Equal(t, http.StatusOK, resp.Code)
	list := decodeEnvelope[ListBackupsResponse](t, resp).Data.Backups
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	resp = ts.api.Get("/api/v1/backups/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Post("/api/v1/backups/" + created.ID + "/restore")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, 1, decodeEnvelope[RestoreResponse](t, resp).Data.Imported.Tools)

	resp = ts.api.Delete("/api/v1/backups/" + created.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/backups/" + created.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestGetBackup_RejectsPathLikeIDs(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/backups/not-a-uuid")
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", decodeEnvelope[any](t, resp).Code)
}
