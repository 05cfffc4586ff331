package store

import (
	"bytes"
	"encoding/json"
	"log/slog"
)

// currentSchemaVersion is written alongside every save. Data without a
// version tag predates tagging and is treated as version 0.
const currentSchemaVersion = 1

// obsoleteToolField marks tool records from the schema that filed a tool
// under a single category instead of categoryIds.
const obsoleteToolField = "main_category"

// migration upgrades raw values from version N to N+1 in place and returns
// the collections it changed.
type migration func(raw *rawCatalog, logger *slog.Logger) []collection

// migrations is indexed by the version being upgraded from.
var migrations = map[int]migration{
	0: migrateLegacyTools,
}

// migrate walks raw from version up to currentSchemaVersion. Data tagged
// with a newer version is left untouched.
func migrate(raw *rawCatalog, version int, logger *slog.Logger) []collection {
	if version > currentSchemaVersion {
		logger.Warn("backing store was written by a newer schema, loading as is",
			"stored_version", version,
			"supported_version", currentSchemaVersion,
		)
		return nil
	}

	var changed []collection
	for v := version; v < currentSchemaVersion; v++ {
		m, ok := migrations[v]
		if !ok {
			continue
		}
		changed = append(changed, m(raw, logger)...)
	}
	return changed
}

// migrateLegacyTools discards tool data in the single-category shape.
// The old shape cannot be mapped onto categoryIds (it stored a name, not an
// id), so the whole value is replaced with the built-in tools.
func migrateLegacyTools(raw *rawCatalog, logger *slog.Logger) []collection {
	if !raw.tools.ok || !isStaleToolData(raw.tools.data) {
		return nil
	}

	logger.Warn("discarding tools stored in an obsolete schema",
		"key", KeyTools,
		"field", obsoleteToolField,
	)
	raw.tools = rawValue{reason: ReasonStaleSchema}
	return []collection{collectionTools}
}

// isStaleToolData reports whether data is a non-empty array whose first
// element carries a truthy obsoleteToolField.
func isStaleToolData(data string) bool {
	var items []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &items); err != nil || len(items) == 0 {
		return false
	}
	v, ok := items[0][obsoleteToolField]
	return ok && isTruthy(v)
}

// isTruthy treats null, false, 0 and "" as false, everything else as true.
func isTruthy(v json.RawMessage) bool {
	v = bytes.TrimSpace(v)
	switch string(v) {
	case "null", "false", `""`:
		return false
	}
	var n float64
	if err := json.Unmarshal(v, &n); err == nil {
		return n != 0
	}
	return len(v) > 0
}
