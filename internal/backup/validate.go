package backup

import (
	"fmt"

	"github.com/aitoolsdash/dashboard/internal/domain"
)

// Validate checks a document without importing it.
//
// Errors make the document unusable: an unsupported version, missing or
// duplicate ids, counts that disagree with the contents, or a prompt whose
// tool is not in the document. Category references that point nowhere are
// only warnings; import resets them.
func Validate(doc *Document) *ValidationResult {
	result := &ValidationResult{Valid: true}
	if doc == nil {
		result.Valid = false
		result.Errors = append(result.Errors, ErrInvalidDocument.Error())
		return result
	}

	actual := countsOf(doc.Catalog())
	result.ExpectedCounts = actual
	fail := func(format string, args ...any) {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf(format, args...))
	}
	warn := func(format string, args ...any) {
		result.Warnings = append(result.Warnings, fmt.Sprintf(format, args...))
	}

	if majorVersion(doc.Version) != majorVersion(FormatVersion) {
		fail("unsupported version %q (want %s)", doc.Version, FormatVersion)
	}

	// Counts are optional for hand-written documents.
	if doc.Counts != (EntityCounts{}) && doc.Counts != actual {
		fail("counts %+v do not match contents %+v", doc.Counts, actual)
	}

	categoryIDs := collectIDs(doc.Categories, func(c domain.Category) string { return c.ID }, "category", fail)
	toolIDs := collectIDs(doc.Tools, func(t domain.Tool) string { return t.ID }, "tool", fail)
	collectIDs(doc.Prompts, func(p domain.Prompt) string { return p.ID }, "prompt", fail)

	for _, t := range doc.Tools {
		for _, categoryID := range t.CategoryIDs {
			if !categoryIDs[categoryID] {
				warn("tool %s references unknown category %s", t.ID, categoryID)
			}
		}
	}
	for _, p := range doc.Prompts {
		if !toolIDs[p.ToolID] {
			fail("prompt %s references unknown tool %q", p.ID, p.ToolID)
		}
		if p.CategoryID != "" && !categoryIDs[p.CategoryID] {
			warn("prompt %s references unknown category %s", p.ID, p.CategoryID)
		}
	}

	return result
}

func collectIDs[T any](items []T, idOf func(T) string, kind string, fail func(string, ...any)) map[string]bool {
	ids := make(map[string]bool, len(items))
	for i, item := range items {
		id := idOf(item)
		switch {
		case id == "":
			fail("%s at index %d has no id", kind, i)
		case ids[id]:
			fail("duplicate %s id %s", kind, id)
		}
		ids[id] = true
	}
	return ids
}
