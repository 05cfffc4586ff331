package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoolsdash/dashboard/internal/backup"
)

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"id":"b1","version":"1.0","categories":[],"tools":[],"prompts":[]}`), 0o600))

	doc, err := readDocument(good)
	require.NoError(t, err)
	assert.Equal(t, "b1", doc.ID)
	assert.Equal(t, "1.0", doc.Version)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"id":`), 0o600))

	_, err = readDocument(bad)
	assert.ErrorIs(t, err, backup.ErrInvalidDocument)

	_, err = readDocument(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestPrintBackups(t *testing.T) {
	var buf bytes.Buffer
	err := printBackups(&buf, []backup.BackupInfo{
		{ID: "7f9c2ba4-e88f-11ee-a1b7-0242ac120002", Size: 2048, CreatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.Local)},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "7f9c2ba4-e88f-11ee-a1b7-0242ac120002")
	assert.Contains(t, out, "2026-03-01 09:30:00")
	assert.Contains(t, out, "2048")
}

func TestImportCommand_RejectsUnknownMode(t *testing.T) {
	importOpts.mode = "partial"
	importOpts.mergeStrategy = string(backup.MergeKeepLocal)
	t.Cleanup(func() { importOpts.mode = string(backup.RestoreModeFull) })

	err := runImport(importCmd, []string{"unused.json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}
