package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/kv"
)

// Backing-store keys. These strings are shared with data written by earlier
// versions of the dashboard and must not change.
const (
	KeyTools         = "ai_tools_dashboard_tools"
	KeyPrompts       = "ai_tools_dashboard_prompts"
	KeyCategories    = "ai_tools_dashboard_categories"
	KeySchemaVersion = "ai_tools_dashboard_schema_version"
)

var errNilBackend = errors.New("store: nil backend")

type collection int

const (
	collectionCategories collection = iota
	collectionTools
	collectionPrompts
)

func (c collection) key() string {
	switch c {
	case collectionCategories:
		return KeyCategories
	case collectionTools:
		return KeyTools
	default:
		return KeyPrompts
	}
}

// Source says where a collection's contents came from at load.
type Source string

// Load sources.
const (
	SourceStored  Source = "stored"
	SourceDefault Source = "default"
)

// Reasons a collection fell back to the built-in dataset.
const (
	ReasonAbsent      = "absent"
	ReasonMalformed   = "malformed"
	ReasonStaleSchema = "stale_schema"
	ReasonReadError   = "read_error"
)

// CollectionLoad is the load outcome of one key.
type CollectionLoad struct {
	Source Source
	Reason string // empty when Source is SourceStored
	Count  int
}

// LoadReport summarises Open.
type LoadReport struct {
	Categories    CollectionLoad
	Tools         CollectionLoad
	Prompts       CollectionLoad
	SchemaVersion int // version found in the backend before migration
	Repair        RepairReport
}

// load reads the three collections, runs migrations and repair, and writes
// back whatever changed. Called once from Open.
func (s *Store) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	versionRaw := s.readRaw(KeySchemaVersion)
	version := s.parseSchemaVersion(versionRaw)
	raw := rawCatalog{
		categories: s.readRaw(KeyCategories),
		tools:      s.readRaw(KeyTools),
		prompts:    s.readRaw(KeyPrompts),
	}

	// A key that could not be read may still hold data. Memory serves the
	// fallback, but nothing is written over the stored value.
	s.suspended = make(map[string]bool)
	for key, v := range map[string]rawValue{
		KeySchemaVersion: versionRaw,
		KeyCategories:    raw.categories,
		KeyTools:         raw.tools,
		KeyPrompts:       raw.prompts,
	} {
		if v.reason == ReasonReadError {
			s.suspended[key] = true
		}
	}

	migrated := migrate(&raw, version, s.logger)

	var report LoadReport
	report.SchemaVersion = version
	s.categories, report.Categories = decodeOrDefault(raw.categories, domain.DefaultCategories)
	s.tools, report.Tools = decodeOrDefault(raw.tools, domain.DefaultTools)
	s.prompts, report.Prompts = decodeOrDefault(raw.prompts, domain.DefaultPrompts)
	for i := range s.tools {
		normalizeTool(&s.tools[i])
	}

	for _, entry := range []struct {
		key  string
		load CollectionLoad
	}{
		{KeyCategories, report.Categories},
		{KeyTools, report.Tools},
		{KeyPrompts, report.Prompts},
	} {
		if entry.load.Source == SourceDefault {
			s.logger.Info("collection loaded from defaults",
				"key", entry.key,
				"reason", entry.load.Reason,
				"count", entry.load.Count,
			)
		} else {
			s.logger.Debug("collection loaded", "key", entry.key, "count", entry.load.Count)
		}
	}

	report.Repair = s.repairLocked(loadRepairScope(report))
	s.report = report

	s.schemaTag = max(version, currentSchemaVersion)

	// Defaults are written back so the backend reflects what is shown,
	// except over a key that could not be read.
	dirty := report.Repair.touched()
	if report.Categories.Source == SourceDefault {
		dirty = append(dirty, collectionCategories)
	}
	if report.Tools.Source == SourceDefault {
		dirty = append(dirty, collectionTools)
	}
	if report.Prompts.Source == SourceDefault {
		dirty = append(dirty, collectionPrompts)
	}
	dirty = append(dirty, migrated...)
	dirty = slices.DeleteFunc(dirty, func(c collection) bool { return s.suspended[c.key()] })
	slices.Sort(dirty)
	dirty = slices.Compact(dirty)

	if len(dirty) > 0 || version < currentSchemaVersion {
		s.persistLocked(dirty...)
	}
}

// rawValue is one key as read from the backend.
type rawValue struct {
	data   string
	ok     bool
	reason string // why the value is unusable, if it is
}

type rawCatalog struct {
	categories rawValue
	tools      rawValue
	prompts    rawValue
}

func (s *Store) readRaw(key string) rawValue {
	data, ok, err := s.backend.Get(key)
	if err != nil {
		s.logger.Error("failed to read backing store", "key", key, "error", err)
		return rawValue{reason: ReasonReadError}
	}
	if !ok {
		return rawValue{reason: ReasonAbsent}
	}
	return rawValue{data: data, ok: true}
}

func (s *Store) parseSchemaVersion(v rawValue) int {
	if !v.ok {
		return 0
	}
	n, err := strconv.Atoi(v.data)
	if err != nil || n < 0 {
		s.logger.Warn("unreadable schema version, treating data as legacy", "value", v.data)
		return 0
	}
	return n
}

// decodeOrDefault decodes a JSON array, falling back to defaults when the
// value is absent, unreadable, not an array, or null.
func decodeOrDefault[T any](v rawValue, defaults func() []T) ([]T, CollectionLoad) {
	if !v.ok {
		d := defaults()
		return d, CollectionLoad{Source: SourceDefault, Reason: v.reason, Count: len(d)}
	}

	items, err := decodeCollection[T](v.data)
	if err != nil {
		d := defaults()
		return d, CollectionLoad{Source: SourceDefault, Reason: ReasonMalformed, Count: len(d)}
	}
	return items, CollectionLoad{Source: SourceStored, Count: len(items)}
}

// encodeCollection serialises a collection. A nil slice encodes as [].
func encodeCollection[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal collection: %w", err)
	}
	return string(data), nil
}

// decodeCollection parses a value produced by encodeCollection.
// JSON null is rejected: every writer stores an array.
func decodeCollection[T any](data string) ([]T, error) {
	var items []T
	if err := json.Unmarshal([]byte(data), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal collection: %w", err)
	}
	if items == nil {
		return nil, errors.New("collection is null")
	}
	return items, nil
}

// persistLocked encodes the given collections plus the schema version and
// writes them in one batch. Failures are logged and remembered, never
// returned: memory stays authoritative. Suspended keys are left untouched.
func (s *Store) persistLocked(cols ...collection) {
	entries := make([]kv.Entry, 0, len(cols)+1)
	for _, c := range cols {
		if s.suspended[c.key()] {
			s.logger.Warn("skipping write to key that failed to load", "key", c.key())
			continue
		}
		var (
			data string
			err  error
		)
		switch c {
		case collectionCategories:
			data, err = encodeCollection(s.categories)
		case collectionTools:
			data, err = encodeCollection(s.tools)
		case collectionPrompts:
			data, err = encodeCollection(s.prompts)
		}
		if err != nil {
			s.lastWriteErr = err
			s.logger.Error("failed to encode collection", "key", c.key(), "error", err)
			return
		}
		entries = append(entries, kv.Entry{Key: c.key(), Value: data})
	}
	if !s.suspended[KeySchemaVersion] {
		entries = append(entries, kv.Entry{
			Key:   KeySchemaVersion,
			Value: strconv.Itoa(s.schemaTag),
		})
	}
	if len(entries) == 0 {
		return
	}

	if err := kv.WriteAll(s.backend, entries); err != nil {
		s.lastWriteErr = err
		keys := make([]string, len(entries))
		for i, e := range entries {
			keys[i] = e.Key
		}
		s.logger.Error("failed to write backing store", "keys", keys, "error", err)
		return
	}
	s.lastWriteErr = nil
}
