package id

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Uniqueness(t *testing.T) {
	// Same-tick creation was the failure mode of timestamp ids.
	ids := make(map[string]bool)
	count := 5000

	for i := 0; i < count; i++ {
		id, err := Generate(PrefixTool)
		require.NoError(t, err)
		assert.False(t, ids[id], "ID should be unique: %s", id)
		ids[id] = true
	}

	assert.Len(t, ids, count)
}

func TestGenerate_Format(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
	}{
		{"category", PrefixCategory},
		{"tool", PrefixTool},
		{"prompt", PrefixPrompt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Generate(tt.prefix)
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(id, tt.prefix+"-"))
			nanoidPart := strings.TrimPrefix(id, tt.prefix+"-")
			assert.Len(t, nanoidPart, 21, "NanoID part should be 21 characters")

			for _, ch := range nanoidPart {
				valid := (ch >= 'A' && ch <= 'Z') ||
					(ch >= 'a' && ch <= 'z') ||
					(ch >= '0' && ch <= '9') ||
					ch == '_' || ch == '-'
				assert.True(t, valid, "invalid character %q in %s", ch, id)
			}
		})
	}
}

func TestGenerate_Concurrent(t *testing.T) {
	var mu sync.Mutex
	ids := make(map[string]bool)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id, err := Generate(PrefixPrompt)
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				ids[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, ids, 1600)
}

func TestSequence(t *testing.T) {
	gen := Sequence()

	a, _ := gen(PrefixTool)
	b, _ := gen(PrefixTool)
	c, _ := gen(PrefixCategory)

	assert.Equal(t, "tool-1", a)
	assert.Equal(t, "tool-2", b)
	assert.Equal(t, "cat-1", c)
}
