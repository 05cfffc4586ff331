package domain

import "slices"

// ToolPatch is a partial update. Nil fields keep the stored value.
type ToolPatch struct {
	Name           *string
	URL            *string
	Description    *string
	CategoryIDs    *[]string
	PersonalRating *int
	Tags           *[]string
}

// Apply merges the patch over t and returns the result. t is not modified.
func (p ToolPatch) Apply(t Tool) Tool {
	out := t.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.URL != nil {
		out.URL = *p.URL
	}
	if p.Description != nil {
		out.Description = *p.Description
	}
	if p.CategoryIDs != nil {
		out.CategoryIDs = slices.Clone(*p.CategoryIDs)
	}
	if p.PersonalRating != nil {
		out.PersonalRating = *p.PersonalRating
	}
	if p.Tags != nil {
		out.Tags = slices.Clone(*p.Tags)
	}
	return out
}

// PromptPatch is a partial update. Nil fields keep the stored value.
type PromptPatch struct {
	ToolID         *string
	Title          *string
	PromptText     *string
	Description    *string
	CategoryID     *string
	PersonalRating *int
}

// Apply merges the patch over p and returns the result.
func (pp PromptPatch) Apply(p Prompt) Prompt {
	if pp.ToolID != nil {
		p.ToolID = *pp.ToolID
	}
	if pp.Title != nil {
		p.Title = *pp.Title
	}
	if pp.PromptText != nil {
		p.PromptText = *pp.PromptText
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.CategoryID != nil {
		p.CategoryID = *pp.CategoryID
	}
	if pp.PersonalRating != nil {
		p.PersonalRating = *pp.PersonalRating
	}
	return p
}

// CategoryPatch is a partial update of a category.
type CategoryPatch struct {
	Name *string
}

// Apply merges the patch over c and returns the result.
func (cp CategoryPatch) Apply(c Category) Category {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	return c
}
