package backup

import "time"

// RestoreOptions configures restoration.
type RestoreOptions struct {
	Mode          RestoreMode
	MergeStrategy MergeStrategy
	DryRun        bool // Validate without writing
}

// RestoreMode determines how to handle existing data.
type RestoreMode string

const (
	// RestoreModeFull replaces the catalog with the backup.
	RestoreModeFull RestoreMode = "full"

	// RestoreModeMerge adds backup data to existing data.
	RestoreModeMerge RestoreMode = "merge"
)

// Valid returns true if the restore mode is recognized.
func (m RestoreMode) Valid() bool {
	switch m {
	case RestoreModeFull, RestoreModeMerge:
		return true
	default:
		return false
	}
}

// MergeStrategy determines conflict resolution in merge mode.
// Entities conflict when they share an id.
type MergeStrategy string

const (
	// MergeKeepLocal keeps local version on conflict.
	MergeKeepLocal MergeStrategy = "keep_local"

	// MergeKeepBackup uses backup version on conflict.
	MergeKeepBackup MergeStrategy = "keep_backup"
)

// Valid returns true if the merge strategy is recognized.
func (s MergeStrategy) Valid() bool {
	switch s {
	case MergeKeepLocal, MergeKeepBackup:
		return true
	case "": // Empty is valid (not needed for non-merge modes)
		return true
	default:
		return false
	}
}

// BackupResult contains the outcome of a backup operation.
type BackupResult struct {
	ID       string        `json:"id"`
	Path     string        `json:"path"`
	Size     int64         `json:"size"`
	Counts   EntityCounts  `json:"counts"`
	Duration time.Duration `json:"duration"`
	Checksum string        `json:"checksum"`
}

// BackupInfo describes an existing backup.
type BackupInfo struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

// RestoreResult contains the outcome of a restore operation.
type RestoreResult struct {
	Imported EntityCounts  `json:"imported"`
	Skipped  EntityCounts  `json:"skipped"`
	Repaired int           `json:"repaired"`
	DryRun   bool          `json:"dry_run"`
	Duration time.Duration `json:"duration"`
}

// ValidationResult describes backup validity.
type ValidationResult struct {
	Valid          bool         `json:"valid"`
	ExpectedCounts EntityCounts `json:"expected_counts"`
	Errors         []string     `json:"errors,omitempty"`
	Warnings       []string     `json:"warnings,omitempty"`
}
