// Package domain holds the dashboard's catalog entities: categories, AI tools
// and the prompts written for them.
package domain

import "slices"

// AllCategories is the category filter value that matches every entity.
const AllCategories = "all"

// MinRating and MaxRating bound personal_rating. Enforced at input and on
// import; stored values are loaded as is.
const (
	MinRating = 0
	MaxRating = 5
)

// Category is a user-defined label shared by tools and prompts.
// Name is unique at creation time only; renames are not checked.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Tool is a catalogued AI tool.
// CategoryIDs is ordered and may hold duplicates; the model does not dedupe.
type Tool struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	URL            string   `json:"url"`
	Description    string   `json:"description"`
	CategoryIDs    []string `json:"categoryIds"`
	PersonalRating int      `json:"personal_rating"`
	Tags           []string `json:"tags"`
}

// HasCategory reports whether the tool is filed under categoryID.
func (t *Tool) HasCategory(categoryID string) bool {
	return slices.Contains(t.CategoryIDs, categoryID)
}

// Clone returns a copy that shares no slices with t.
func (t Tool) Clone() Tool {
	t.CategoryIDs = slices.Clone(t.CategoryIDs)
	t.Tags = slices.Clone(t.Tags)
	return t
}

// Prompt is a reusable prompt owned by exactly one tool.
// CategoryID is empty when the prompt is uncategorized.
type Prompt struct {
	ID             string `json:"id"`
	ToolID         string `json:"toolId"`
	Title          string `json:"title"`
	PromptText     string `json:"promptText"`
	Description    string `json:"description"`
	CategoryID     string `json:"categoryId"`
	PersonalRating int    `json:"personal_rating"`
}

// IsUncategorized reports whether the prompt has no category.
func (p *Prompt) IsUncategorized() bool {
	return p.CategoryID == ""
}

// ClampRating forces r into [MinRating, MaxRating].
func ClampRating(r int) int {
	return min(max(r, MinRating), MaxRating)
}
