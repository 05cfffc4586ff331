package domain

import "slices"

// Catalog is a point-in-time copy of the three collections.
type Catalog struct {
	Categories []Category `json:"categories"`
	Tools      []Tool     `json:"tools"`
	Prompts    []Prompt   `json:"prompts"`
}

// Clone returns a deep copy.
func (c Catalog) Clone() Catalog {
	tools := make([]Tool, len(c.Tools))
	for i, t := range c.Tools {
		tools[i] = t.Clone()
	}
	return Catalog{
		Categories: slices.Clone(c.Categories),
		Tools:      tools,
		Prompts:    slices.Clone(c.Prompts),
	}
}
