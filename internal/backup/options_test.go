package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRestoreMode_Valid(t *testing.T) {
	tests := []struct {
		mode  RestoreMode
		valid bool
	}{
		{RestoreModeFull, true},
		{RestoreModeMerge, true},
		{"events_only", false},
		{"invalid", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.mode.Valid())
		})
	}
}

func TestMergeStrategy_Valid(t *testing.T) {
	tests := []struct {
		strategy MergeStrategy
		valid    bool
	}{
		{MergeKeepLocal, true},
		{MergeKeepBackup, true},
		{"", true}, // Empty is valid
		{"newest", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.strategy), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.strategy.Valid())
		})
	}
}

func TestMajorVersion(t *testing.T) {
	assert.Equal(t, "1", majorVersion("1.0"))
	assert.Equal(t, "1", majorVersion("1.7"))
	assert.Equal(t, "2", majorVersion("2"))
	assert.Equal(t, "", majorVersion(""))
}
