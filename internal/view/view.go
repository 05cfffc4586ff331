// Package view computes the filtered tool and prompt lists shown by the
// dashboard. Everything here is a pure function of its inputs.
package view

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/aitoolsdash/dashboard/internal/domain"
)

// Filter holds the current search and category selection.
// An empty CategoryID is the same as domain.AllCategories.
type Filter struct {
	SearchTerm string
	CategoryID string
}

// Result is the projection of a catalog through a Filter.
type Result struct {
	Tools   []domain.Tool   `json:"tools"`
	Prompts []domain.Prompt `json:"prompts"`
}

// Project returns the tools and prompts that pass f, in collection order.
//
// A tool passes when the search term is a case-insensitive substring of its
// name or description and, unless all categories are selected, the selected
// category is one of its categoryIds. A prompt passes when the term is found
// in its title, its text or the name of its owning tool, and its categoryId
// equals the selected category.
func Project(c domain.Catalog, f Filter) Result {
	m := newMatcher(f.SearchTerm)
	allCategories := f.CategoryID == "" || f.CategoryID == domain.AllCategories

	toolNames := make(map[string]string, len(c.Tools))
	for _, t := range c.Tools {
		toolNames[t.ID] = t.Name
	}

	res := Result{
		Tools:   make([]domain.Tool, 0, len(c.Tools)),
		Prompts: make([]domain.Prompt, 0, len(c.Prompts)),
	}

	for _, t := range c.Tools {
		if !m.any(t.Name, t.Description) {
			continue
		}
		if !allCategories && !t.HasCategory(f.CategoryID) {
			continue
		}
		res.Tools = append(res.Tools, t.Clone())
	}

	for _, p := range c.Prompts {
		if !m.any(p.Title, p.PromptText, toolNames[p.ToolID]) {
			continue
		}
		if !allCategories && p.CategoryID != f.CategoryID {
			continue
		}
		res.Prompts = append(res.Prompts, p)
	}

	return res
}

// matcher does case-insensitive substring matching using Unicode case
// folding, so "STRASSE" finds "straße" and Greek final sigma matches.
type matcher struct {
	folder cases.Caser
	needle string
}

func newMatcher(term string) *matcher {
	m := &matcher{folder: cases.Fold()}
	m.needle = m.folder.String(term)
	return m
}

func (m *matcher) any(fields ...string) bool {
	if m.needle == "" {
		return true
	}
	for _, field := range fields {
		if strings.Contains(m.folder.String(field), m.needle) {
			return true
		}
	}
	return false
}
