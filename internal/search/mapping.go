package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for catalog documents.
//
// Names use the standard analyzer (no stemming) so fuzzy and prefix queries
// compare against the words as typed. Longer text uses English stemming.
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// Name - tool name or prompt title, primary search target
	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = standard.Name
	nameFieldMapping.Store = true
	nameFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	toolNameFieldMapping := bleve.NewTextFieldMapping()
	toolNameFieldMapping.Analyzer = standard.Name
	toolNameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tool_name", toolNameFieldMapping)

	descFieldMapping := bleve.NewTextFieldMapping()
	descFieldMapping.Analyzer = en.AnalyzerName
	descFieldMapping.Store = false
	descFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("description", descFieldMapping)

	promptTextFieldMapping := bleve.NewTextFieldMapping()
	promptTextFieldMapping.Analyzer = en.AnalyzerName
	promptTextFieldMapping.Store = false
	promptTextFieldMapping.IncludeTermVectors = true
	docMapping.AddFieldMappingsAt("prompt_text", promptTextFieldMapping)

	// --- Keyword fields (exact match) ---

	typeFieldMapping := bleve.NewTextFieldMapping()
	typeFieldMapping.Analyzer = keyword.Name
	typeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("type", typeFieldMapping)

	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	idFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	toolIDFieldMapping := bleve.NewTextFieldMapping()
	toolIDFieldMapping.Analyzer = keyword.Name
	toolIDFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tool_id", toolIDFieldMapping)

	// Keyword analyzer keeps compound tags intact (e.g., "long-context")
	tagsFieldMapping := bleve.NewTextFieldMapping()
	tagsFieldMapping.Analyzer = keyword.Name
	tagsFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("tags", tagsFieldMapping)

	categoriesFieldMapping := bleve.NewTextFieldMapping()
	categoriesFieldMapping.Analyzer = keyword.Name
	docMapping.AddFieldMappingsAt("categories", categoriesFieldMapping)

	ratingFieldMapping := bleve.NewNumericFieldMapping()
	ratingFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("rating", ratingFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
