// Package search provides full-text search over the catalog using Bleve.
// Tools and prompts share one in-memory index and are told apart by type.
package search

import (
	"github.com/aitoolsdash/dashboard/internal/domain"
)

// DocType represents the type of document in the unified index.
type DocType string

// Document types for the search index.
const (
	DocTypeTool   DocType = "tool"
	DocTypePrompt DocType = "prompt"
)

// Document is the unified document structure for the Bleve index.
//
// Prompts carry their owning tool's name so a search for the tool also
// surfaces its prompts.
type Document struct {
	ID   string  `json:"id"`
	Type DocType `json:"type"`

	// Tool: name, Prompt: title
	Name string `json:"name"`

	Description string   `json:"description,omitempty"`
	PromptText  string   `json:"prompt_text,omitempty"`
	ToolID      string   `json:"tool_id,omitempty"`
	ToolName    string   `json:"tool_name,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Rating      int      `json:"rating"`
}

// docKey is the Bleve document id. Tool and prompt ids live in separate
// namespaces, so the type is part of the key.
func docKey(t DocType, id string) string {
	return string(t) + ":" + id
}

// Key returns the Bleve document id for d.
func (d *Document) Key() string {
	return docKey(d.Type, d.ID)
}

// ToMap converts the document to a map for Bleve indexing, so field names
// always match the mapping.
func (d *Document) ToMap() map[string]any {
	m := map[string]any{
		"id":     d.ID,
		"type":   string(d.Type),
		"name":   d.Name,
		"rating": float64(d.Rating),
	}
	if d.Description != "" {
		m["description"] = d.Description
	}
	if d.PromptText != "" {
		m["prompt_text"] = d.PromptText
	}
	if d.ToolID != "" {
		m["tool_id"] = d.ToolID
	}
	if d.ToolName != "" {
		m["tool_name"] = d.ToolName
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if len(d.Categories) > 0 {
		m["categories"] = d.Categories
	}
	return m
}

// ToolToDocument converts a tool to a search document.
func ToolToDocument(t domain.Tool) *Document {
	return &Document{
		ID:          t.ID,
		Type:        DocTypeTool,
		Name:        t.Name,
		Description: t.Description,
		Tags:        t.Tags,
		Categories:  t.CategoryIDs,
		Rating:      t.PersonalRating,
	}
}

// PromptToDocument converts a prompt to a search document.
// toolName is denormalized from the owning tool.
func PromptToDocument(p domain.Prompt, toolName string) *Document {
	doc := &Document{
		ID:          p.ID,
		Type:        DocTypePrompt,
		Name:        p.Title,
		Description: p.Description,
		PromptText:  p.PromptText,
		ToolID:      p.ToolID,
		ToolName:    toolName,
		Rating:      p.PersonalRating,
	}
	if p.CategoryID != "" {
		doc.Categories = []string{p.CategoryID}
	}
	return doc
}
