package service

import (
	"strings"
)

// CreateCategoryRequest is the input for CreateCategory.
type CreateCategoryRequest struct {
	Name string `json:"name" validate:"notblank,max=100"`
}

// UpdateCategoryRequest renames a category.
type UpdateCategoryRequest struct {
	Name *string `json:"name,omitempty" validate:"omitnil,notblank,max=100"`
}

// CreateToolRequest is the input for CreateTool.
//
// Tags may be given as a list, as a comma-separated TagsInput string (what
// the dashboard's tag field sends), or both; they are concatenated.
type CreateToolRequest struct {
	Name           string   `json:"name" validate:"notblank,max=200"`
	URL            string   `json:"url" validate:"required,http_url"`
	Description    string   `json:"description,omitempty" validate:"max=2000"`
	CategoryIDs    []string `json:"categoryIds,omitempty" validate:"dive,notblank"`
	PersonalRating int      `json:"personal_rating" validate:"gte=0,lte=5"`
	Tags           []string `json:"tags,omitempty" validate:"dive,notblank,max=50"`
	TagsInput      string   `json:"tagsInput,omitempty"`
}

func (r *CreateToolRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.URL = strings.TrimSpace(r.URL)
	r.Tags = mergeTags(r.Tags, r.TagsInput)
	r.TagsInput = ""
}

// UpdateToolRequest merges the provided fields into a tool.
type UpdateToolRequest struct {
	Name           *string   `json:"name,omitempty" validate:"omitnil,notblank,max=200"`
	URL            *string   `json:"url,omitempty" validate:"omitnil,http_url"`
	Description    *string   `json:"description,omitempty" validate:"omitnil,max=2000"`
	CategoryIDs    *[]string `json:"categoryIds,omitempty" validate:"omitnil,dive,notblank"`
	PersonalRating *int      `json:"personal_rating,omitempty" validate:"omitnil,gte=0,lte=5"`
	Tags           *[]string `json:"tags,omitempty" validate:"omitnil,dive,notblank,max=50"`
	TagsInput      *string   `json:"tagsInput,omitempty"`
}

func (r *UpdateToolRequest) normalize() {
	r.Name = trimPtr(r.Name)
	r.URL = trimPtr(r.URL)
	if r.Tags != nil || r.TagsInput != nil {
		var list []string
		if r.Tags != nil {
			list = *r.Tags
		}
		var input string
		if r.TagsInput != nil {
			input = *r.TagsInput
		}
		tags := mergeTags(list, input)
		r.Tags = &tags
		r.TagsInput = nil
	}
}

// CreatePromptRequest is the input for CreatePrompt.
type CreatePromptRequest struct {
	ToolID         string `json:"toolId"`
	CategoryID     string `json:"categoryId"`
	Title          string `json:"title" validate:"notblank,max=200"`
	PromptText     string `json:"promptText" validate:"notblank"`
	Description    string `json:"description,omitempty" validate:"max=2000"`
	PersonalRating int    `json:"personal_rating" validate:"gte=0,lte=5"`
}

// UpdatePromptRequest merges the provided fields into a prompt.
type UpdatePromptRequest struct {
	ToolID         *string `json:"toolId,omitempty" validate:"omitnil,notblank"`
	CategoryID     *string `json:"categoryId,omitempty" validate:"omitnil,notblank"`
	Title          *string `json:"title,omitempty" validate:"omitnil,notblank,max=200"`
	PromptText     *string `json:"promptText,omitempty" validate:"omitnil,notblank"`
	Description    *string `json:"description,omitempty" validate:"omitnil,max=2000"`
	PersonalRating *int    `json:"personal_rating,omitempty" validate:"omitnil,gte=0,lte=5"`
}

// ParseTags splits a comma-separated tag string, trimming each tag and
// dropping empty ones.
func ParseTags(input string) []string {
	tags := []string{}
	for part := range strings.SplitSeq(input, ",") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func mergeTags(list []string, input string) []string {
	tags := make([]string, 0, len(list))
	for _, tag := range list {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return append(tags, ParseTags(input)...)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
