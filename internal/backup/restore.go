package backup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// Import restores doc into the catalog.
//
// In full mode the catalog is replaced. In merge mode backup entities are
// added to the local ones and id conflicts are settled by the merge
// strategy. Either way the result goes through Store.Replace, which repairs
// any dangling references.
func (s *Service) Import(ctx context.Context, doc *Document, opts RestoreOptions) (*RestoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opts.Mode == "" {
		opts.Mode = RestoreModeFull
	}
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("unknown restore mode %q", opts.Mode)
	}
	if !opts.MergeStrategy.Valid() {
		return nil, fmt.Errorf("unknown merge strategy %q", opts.MergeStrategy)
	}

	validation := Validate(doc)
	if !validation.Valid {
		if doc != nil && majorVersion(doc.Version) != majorVersion(FormatVersion) {
			return nil, fmt.Errorf("%w: %s", ErrVersionMismatch, doc.Version)
		}
		return nil, fmt.Errorf("%w: %s", ErrCorruptedBackup, strings.Join(validation.Errors, "; "))
	}

	start := time.Now()
	s.logger.Info("starting restore",
		"backup_id", doc.ID,
		"mode", opts.Mode,
		"merge_strategy", opts.MergeStrategy,
		"dry_run", opts.DryRun)

	incoming := doc.Catalog()
	result := &RestoreResult{DryRun: opts.DryRun}

	var target domain.Catalog
	switch opts.Mode {
	case RestoreModeMerge:
		target = merge(s.catalog.Snapshot(), incoming, opts.MergeStrategy, result)
	default:
		target = incoming
		result.Imported = countsOf(incoming)
	}

	if !opts.DryRun {
		repaired := s.catalog.Replace(target)
		result.Repaired = repaired.DuplicateIDsDropped +
			repaired.OrphanPromptsDropped +
			repaired.ToolCategoryRefsPruned +
			repaired.PromptCategoriesReset
	}
	result.Duration = time.Since(start)

	s.logger.Info("restore complete",
		"backup_id", doc.ID,
		"imported", result.Imported,
		"skipped", result.Skipped,
		"repaired", result.Repaired,
		"duration", result.Duration)

	return result, nil
}

// Restore loads a backup file by id and imports it.
func (s *Service) Restore(ctx context.Context, id string, opts RestoreOptions) (*RestoreResult, error) {
	doc, err := s.Load(id)
	if err != nil {
		return nil, err
	}
	return s.Import(ctx, doc, opts)
}

// merge overlays incoming on local. Local order is kept; new entities are
// appended in backup order.
func merge(local, incoming domain.Catalog, strategy MergeStrategy, result *RestoreResult) domain.Catalog {
	if strategy == "" {
		strategy = MergeKeepLocal
	}

	var imported, skipped int
	local.Categories, imported, skipped = mergeByID(local.Categories, incoming.Categories,
		func(c domain.Category) string { return c.ID }, strategy)
	result.Imported.Categories, result.Skipped.Categories = imported, skipped

	local.Tools, imported, skipped = mergeByID(local.Tools, incoming.Tools,
		func(t domain.Tool) string { return t.ID }, strategy)
	result.Imported.Tools, result.Skipped.Tools = imported, skipped

	local.Prompts, imported, skipped = mergeByID(local.Prompts, incoming.Prompts,
		func(p domain.Prompt) string { return p.ID }, strategy)
	result.Imported.Prompts, result.Skipped.Prompts = imported, skipped

	return local
}

func mergeByID[T any](local, incoming []T, idOf func(T) string, strategy MergeStrategy) (merged []T, imported, skipped int) {
	index := make(map[string]int, len(local))
	for i, item := range local {
		index[idOf(item)] = i
	}

	merged = local
	for _, item := range incoming {
		i, exists := index[idOf(item)]
		switch {
		case !exists:
			index[idOf(item)] = len(merged)
			merged = append(merged, item)
			imported++
		case strategy == MergeKeepBackup:
			merged[i] = item
			imported++
		default:
			skipped++
		}
	}
	return merged, imported, skipped
}

// Ensure the store satisfies Catalog.
var _ Catalog = (*store.Store)(nil)
