package store_test

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/id"
	"github.com/aitoolsdash/dashboard/internal/kv"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// seededBackend returns a memory backend holding the given raw values.
func seededBackend(t *testing.T, values map[string]string) *kv.Memory {
	t.Helper()

	b := kv.NewMemory()
	for k, v := range values {
		require.NoError(t, b.Set(k, v))
	}
	return b
}

// emptyBackend holds three empty collections tagged with the current schema.
func emptyBackend(t *testing.T) *kv.Memory {
	t.Helper()
	return seededBackend(t, map[string]string{
		store.KeyCategories:    "[]",
		store.KeyTools:         "[]",
		store.KeyPrompts:       "[]",
		store.KeySchemaVersion: "1",
	})
}

func openStore(t *testing.T, b kv.Backend) *store.Store {
	t.Helper()

	s, err := store.Open(b, nil, store.WithIDGenerator(id.Sequence()))
	require.NoError(t, err)
	return s
}

func setupTestStore(t *testing.T) (*store.Store, *kv.Memory) {
	t.Helper()

	b := emptyBackend(t)
	return openStore(t, b), b
}

func readStored[T any](t *testing.T, b kv.Backend, key string) []T {
	t.Helper()

	raw, ok, err := b.Get(key)
	require.NoError(t, err)
	require.True(t, ok, "key %s not stored", key)

	var items []T
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	return items
}

func storedVersion(t *testing.T, b kv.Backend) string {
	t.Helper()

	raw, ok, err := b.Get(store.KeySchemaVersion)
	require.NoError(t, err)
	require.True(t, ok)
	return raw
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()

	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

// recordingIndexer captures the calls a Store makes to its search indexer.
type recordingIndexer struct {
	mu             sync.Mutex
	rebuilds       int
	indexedTools   []string
	deletedTools   []string
	indexedPrompts []string
	deletedPrompts []string
	lastRebuild    domain.Catalog
}

func (r *recordingIndexer) IndexTool(t domain.Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexedTools = append(r.indexedTools, t.ID)
	return nil
}

func (r *recordingIndexer) DeleteTool(toolID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedTools = append(r.deletedTools, toolID)
	return nil
}

func (r *recordingIndexer) IndexPrompt(p domain.Prompt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexedPrompts = append(r.indexedPrompts, p.ID)
	return nil
}

func (r *recordingIndexer) DeletePrompt(promptID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedPrompts = append(r.deletedPrompts, promptID)
	return nil
}

func (r *recordingIndexer) Rebuild(c domain.Catalog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rebuilds++
	r.lastRebuild = c
	return nil
}
