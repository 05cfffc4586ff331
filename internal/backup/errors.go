// Package backup exports the catalog as a single JSON document and restores
// it, either from a request body or from backup files kept on disk.
package backup

import "errors"

var (
	// ErrInvalidDocument indicates the document is missing or malformed.
	ErrInvalidDocument = errors.New("invalid or missing backup document")

	// ErrVersionMismatch indicates the backup version is not supported.
	ErrVersionMismatch = errors.New("backup version not supported")

	// ErrCorruptedBackup indicates the backup failed integrity checks.
	ErrCorruptedBackup = errors.New("backup integrity check failed")

	// ErrBackupNotFound indicates the requested backup does not exist.
	ErrBackupNotFound = errors.New("backup not found")
)
