package backup

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aitoolsdash/dashboard/internal/domain"
)

// FormatVersion is the backup format version. Increment major on breaking changes.
const FormatVersion = "1.0"

// Document is a complete, self-contained copy of the catalog.
type Document struct {
	ID         string            `json:"id"`
	Version    string            `json:"version"`
	ExportedAt time.Time         `json:"exported_at"`
	Counts     EntityCounts      `json:"counts"`
	Categories []domain.Category `json:"categories"`
	Tools      []domain.Tool     `json:"tools"`
	Prompts    []domain.Prompt   `json:"prompts"`
}

// EntityCounts tracks entity counts for validation and progress reporting.
type EntityCounts struct {
	Categories int `json:"categories"`
	Tools      int `json:"tools"`
	Prompts    int `json:"prompts"`
}

// NewDocument wraps a catalog snapshot in a fresh document.
func NewDocument(c domain.Catalog, now time.Time) Document {
	c = c.Clone()
	if c.Categories == nil {
		c.Categories = []domain.Category{}
	}
	if c.Tools == nil {
		c.Tools = []domain.Tool{}
	}
	if c.Prompts == nil {
		c.Prompts = []domain.Prompt{}
	}
	return Document{
		ID:         uuid.NewString(),
		Version:    FormatVersion,
		ExportedAt: now.UTC(),
		Counts:     countsOf(c),
		Categories: c.Categories,
		Tools:      c.Tools,
		Prompts:    c.Prompts,
	}
}

// Catalog returns the document's collections as a catalog.
func (d *Document) Catalog() domain.Catalog {
	return domain.Catalog{
		Categories: d.Categories,
		Tools:      d.Tools,
		Prompts:    d.Prompts,
	}.Clone()
}

func countsOf(c domain.Catalog) EntityCounts {
	return EntityCounts{
		Categories: len(c.Categories),
		Tools:      len(c.Tools),
		Prompts:    len(c.Prompts),
	}
}

// majorVersion returns the part of v before the first dot.
func majorVersion(v string) string {
	major, _, _ := strings.Cut(v, ".")
	return major
}
