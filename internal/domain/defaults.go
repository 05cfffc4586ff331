package domain

// Built-in dataset used when a collection has never been saved, cannot be
// decoded, or was written by an incompatible schema. Each call returns fresh
// slices so callers may mutate them.

// DefaultCategories returns the starter categories.
func DefaultCategories() []Category {
	return []Category{
		{ID: "cat_writing", Name: "Writing"},
		{ID: "cat_coding", Name: "Coding"},
		{ID: "cat_images", Name: "Images"},
		{ID: "cat_research", Name: "Research"},
	}
}

// DefaultTools returns the starter tools.
func DefaultTools() []Tool {
	return []Tool{
		{
			ID:             "tool_chatgpt",
			Name:           "ChatGPT",
			URL:            "https://chat.openai.com",
			Description:    "General purpose conversational assistant for drafting, summarising and brainstorming.",
			CategoryIDs:    []string{"cat_writing", "cat_research"},
			PersonalRating: 5,
			Tags:           []string{"chat", "llm"},
		},
		{
			ID:             "tool_claude",
			Name:           "Claude",
			URL:            "https://claude.ai",
			Description:    "Long-context assistant, strong at analysing documents and writing code.",
			CategoryIDs:    []string{"cat_writing", "cat_coding"},
			PersonalRating: 5,
			Tags:           []string{"chat", "llm", "long-context"},
		},
		{
			ID:             "tool_midjourney",
			Name:           "Midjourney",
			URL:            "https://www.midjourney.com",
			Description:    "Text-to-image generation with a strong artistic style.",
			CategoryIDs:    []string{"cat_images"},
			PersonalRating: 4,
			Tags:           []string{"image", "art"},
		},
		{
			ID:             "tool_perplexity",
			Name:           "Perplexity",
			URL:            "https://www.perplexity.ai",
			Description:    "Answer engine that cites its sources.",
			CategoryIDs:    []string{"cat_research"},
			PersonalRating: 4,
			Tags:           []string{"search", "citations"},
		},
		{
			ID:             "tool_copilot",
			Name:           "GitHub Copilot",
			URL:            "https://github.com/features/copilot",
			Description:    "Code completion inside the editor.",
			CategoryIDs:    []string{"cat_coding"},
			PersonalRating: 4,
			Tags:           []string{"code", "ide"},
		},
	}
}

// DefaultPrompts returns the starter prompts. Every ToolID refers to an entry
// of DefaultTools.
func DefaultPrompts() []Prompt {
	return []Prompt{
		{
			ID:             "prompt_blog_outline",
			ToolID:         "tool_chatgpt",
			Title:          "Blog post outline",
			PromptText:     "Create a detailed outline for a blog post about [topic]. Include an introduction, 5 main sections with sub-points, and a conclusion.",
			Description:    "Quick structure for long-form articles.",
			CategoryID:     "cat_writing",
			PersonalRating: 4,
		},
		{
			ID:             "prompt_code_review",
			ToolID:         "tool_claude",
			Title:          "Code review",
			PromptText:     "Review the following code for bugs, readability and performance. Suggest concrete improvements:\n\n[code]",
			Description:    "Second pair of eyes before opening a pull request.",
			CategoryID:     "cat_coding",
			PersonalRating: 5,
		},
		{
			ID:             "prompt_product_shot",
			ToolID:         "tool_midjourney",
			Title:          "Product shot",
			PromptText:     "Studio photograph of [product] on a marble surface, soft window light, 85mm lens, high detail --ar 4:5",
			Description:    "Clean e-commerce style imagery.",
			CategoryID:     "cat_images",
			PersonalRating: 3,
		},
		{
			ID:             "prompt_lit_review",
			ToolID:         "tool_perplexity",
			Title:          "Literature scan",
			PromptText:     "List the most cited recent papers on [subject] and summarise each in two sentences with links.",
			Description:    "",
			CategoryID:     "cat_research",
			PersonalRating: 4,
		},
	}
}

// DefaultCatalog returns the full starter dataset.
func DefaultCatalog() Catalog {
	return Catalog{
		Categories: DefaultCategories(),
		Tools:      DefaultTools(),
		Prompts:    DefaultPrompts(),
	}
}
