package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aitoolsdash/dashboard/internal/domain"
	"github.com/aitoolsdash/dashboard/internal/store"
)

// fileSuffix marks backup files inside the backup directory.
const fileSuffix = ".aitools.json"

// Catalog is the part of the store a backup needs.
type Catalog interface {
	Snapshot() domain.Catalog
	Replace(c domain.Catalog) store.RepairReport
}

// Service creates, lists and restores catalog backups.
type Service struct {
	catalog   Catalog
	backupDir string
	logger    *slog.Logger
}

// NewService creates a Service. backupDir is created on first use.
func NewService(c Catalog, backupDir string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		catalog:   c,
		backupDir: backupDir,
		logger:    logger,
	}
}

// Export returns the current catalog as a document.
func (s *Service) Export() *Document {
	doc := NewDocument(s.catalog.Snapshot(), time.Now())
	return &doc
}

// Create writes the current catalog to a new backup file.
func (s *Service) Create(ctx context.Context) (*BackupResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, fmt.Errorf("create backup dir: %w", err)
	}

	doc := s.Export()
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}

	outputPath := s.GetPath(doc.ID)
	if err := writeFileAtomic(s.backupDir, outputPath, data); err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	result := &BackupResult{
		ID:       doc.ID,
		Path:     outputPath,
		Size:     int64(len(data)),
		Counts:   doc.Counts,
		Duration: time.Since(start),
		Checksum: hex.EncodeToString(sum[:]),
	}

	s.logger.Info("backup complete",
		"path", result.Path,
		"size", result.Size,
		"duration", result.Duration,
		"checksum", result.Checksum)

	return result, nil
}

// writeFileAtomic writes data to a temp file in dir and renames it to path,
// so a crash never leaves a half-written backup behind.
func writeFileAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".backup-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write backup: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync backup: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close backup: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename backup: %w", err)
	}
	return nil
}

// List returns all available backups, newest first.
func (s *Service) List(ctx context.Context) ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []BackupInfo{}, nil
		}
		return nil, err
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), fileSuffix) {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		backups = append(backups, BackupInfo{
			ID:        strings.TrimSuffix(entry.Name(), fileSuffix),
			Path:      filepath.Join(s.backupDir, entry.Name()),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	slices.SortFunc(backups, func(a, b BackupInfo) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return backups, nil
}

// Get returns a backup by ID.
func (s *Service) Get(ctx context.Context, id string) (*BackupInfo, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBackupNotFound
		}
		return nil, err
	}

	return &BackupInfo{
		ID:        id,
		Path:      path,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}

// Load reads and decodes a backup file.
func (s *Service) Load(id string) (*Document, error) {
	path, err := s.pathFor(id)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrBackupNotFound
		}
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return &doc, nil
}

// Delete removes a backup.
func (s *Service) Delete(ctx context.Context, id string) error {
	path, err := s.pathFor(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrBackupNotFound
		}
		return err
	}
	s.logger.Info("backup deleted", "backup_id", id)
	return nil
}

// GetPath returns the file path for a backup ID.
func (s *Service) GetPath(id string) string {
	return filepath.Join(s.backupDir, id+fileSuffix)
}

// pathFor maps an id to its file. Backup ids are UUIDs; anything else is
// treated as unknown, which also keeps ids from escaping the directory.
func (s *Service) pathFor(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", ErrBackupNotFound
	}
	return s.GetPath(id), nil
}
