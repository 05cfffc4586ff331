package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aitoolsdash/dashboard/internal/domain"
)

func fixture() domain.Catalog {
	return domain.Catalog{
		Categories: []domain.Category{
			{ID: "cat-1", Name: "Writing"},
			{ID: "cat-2", Name: "Coding"},
		},
		Tools: []domain.Tool{
			{ID: "tool-1", Name: "Super LLM", Description: "general chat", CategoryIDs: []string{"cat-1"}},
			{ID: "tool-2", Name: "CodeBot", Description: "Writes SUPERB code", CategoryIDs: []string{"cat-2"}},
			{ID: "tool-3", Name: "Painter", Description: "images", CategoryIDs: []string{}},
		},
		Prompts: []domain.Prompt{
			{ID: "prompt-1", ToolID: "tool-1", Title: "Outline", PromptText: "outline a post", CategoryID: "cat-1"},
			{ID: "prompt-2", ToolID: "tool-2", Title: "Refactor", PromptText: "clean up this code", CategoryID: "cat-2"},
			{ID: "prompt-3", ToolID: "tool-3", Title: "Portrait", PromptText: "oil painting", CategoryID: ""},
		},
	}
}

func toolIDs(ts []domain.Tool) []string {
	ids := make([]string, len(ts))
	for i, t := range ts {
		ids[i] = t.ID
	}
	return ids
}

func promptIDs(ps []domain.Prompt) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestProject_EmptyFilterReturnsEverythingInOrder(t *testing.T) {
	res := Project(fixture(), Filter{CategoryID: domain.AllCategories})

	assert.Equal(t, []string{"tool-1", "tool-2", "tool-3"}, toolIDs(res.Tools))
	assert.Equal(t, []string{"prompt-1", "prompt-2", "prompt-3"}, promptIDs(res.Prompts))
}

func TestProject_EmptyCategoryMeansAll(t *testing.T) {
	a := Project(fixture(), Filter{})
	b := Project(fixture(), Filter{CategoryID: domain.AllCategories})

	assert.Equal(t, a, b)
}

func TestProject_ToolSearch(t *testing.T) {
	tests := []struct {
		name string
		term string
		want []string
	}{
		{"name match is case-insensitive", "super", []string{"tool-1", "tool-2"}},
		{"description only", "images", []string{"tool-3"}},
		{"upper-case term", "CODEBOT", []string{"tool-2"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Project(fixture(), Filter{SearchTerm: tt.term})
			assert.Equal(t, tt.want, toolIDs(res.Tools))
		})
	}
}

func TestProject_PromptSearchMatchesOwningToolName(t *testing.T) {
	res := Project(fixture(), Filter{SearchTerm: "painter"})

	assert.Equal(t, []string{"prompt-3"}, promptIDs(res.Prompts))
}

func TestProject_PromptSearchIgnoresDescription(t *testing.T) {
	c := fixture()
	c.Prompts[0].Description = "hidden-needle"

	res := Project(c, Filter{SearchTerm: "hidden-needle"})

	assert.Empty(t, res.Prompts)
}

func TestProject_PromptWithMissingToolStillSearchable(t *testing.T) {
	c := fixture()
	c.Prompts = append(c.Prompts, domain.Prompt{ID: "prompt-x", ToolID: "gone", Title: "Stray"})

	res := Project(c, Filter{SearchTerm: "stray"})
	assert.Equal(t, []string{"prompt-x"}, promptIDs(res.Prompts))
}

func TestProject_CategoryFilter(t *testing.T) {
	res := Project(fixture(), Filter{CategoryID: "cat-2"})

	assert.Equal(t, []string{"tool-2"}, toolIDs(res.Tools))
	assert.Equal(t, []string{"prompt-2"}, promptIDs(res.Prompts))
}

func TestProject_CategoryAndSearchCombine(t *testing.T) {
	res := Project(fixture(), Filter{SearchTerm: "super", CategoryID: "cat-1"})

	assert.Equal(t, []string{"tool-1"}, toolIDs(res.Tools))
	assert.Equal(t, []string{"prompt-1"}, promptIDs(res.Prompts), "matches through its owning tool's name")
}

func TestProject_UnicodeFolding(t *testing.T) {
	c := domain.Catalog{
		Tools: []domain.Tool{
			{ID: "tool-1", Name: "Straße Helper"},
			{ID: "tool-2", Name: "أداة الكتابة"},
		},
	}

	assert.Equal(t, []string{"tool-1"}, toolIDs(Project(c, Filter{SearchTerm: "STRASSE"}).Tools))
	assert.Equal(t, []string{"tool-2"}, toolIDs(Project(c, Filter{SearchTerm: "الكتابة"}).Tools))
}

func TestProject_IdempotentAndPure(t *testing.T) {
	c := fixture()
	before := c.Clone()
	f := Filter{SearchTerm: "chat", CategoryID: "cat-1"}

	first := Project(c, f)
	second := Project(c, f)

	require.Equal(t, first, second)
	assert.Equal(t, before, c, "inputs must not be mutated")

	require.NotEmpty(t, first.Tools)
	first.Tools[0].CategoryIDs[0] = "mutated"
	assert.Equal(t, "cat-1", c.Tools[0].CategoryIDs[0], "results must not alias inputs")
}

func TestProject_EmptyCatalog(t *testing.T) {
	res := Project(domain.Catalog{}, Filter{SearchTerm: "x"})

	assert.NotNil(t, res.Tools)
	assert.NotNil(t, res.Prompts)
	assert.Empty(t, res.Tools)
	assert.Empty(t, res.Prompts)
}
