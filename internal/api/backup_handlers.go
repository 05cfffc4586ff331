package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/aitoolsdash/dashboard/internal/backup"
)

func (s *Server) registerBackupRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "exportCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/backup",
		Summary:     "Export catalog",
		Description: "Returns the whole catalog as one backup document",
		Tags:        []string{"Backup"},
	}, s.handleExportCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "importCatalog",
		Middlewares: s.restoreLimit,
		Method:      http.MethodPost,
		Path:        "/api/v1/backup",
		Summary:     "Import catalog",
		Description: "Restores a backup document sent as the request body",
		Tags:        []string{"Backup"},
	}, s.handleImportCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "validateBackupDocument",
		Method:      http.MethodPost,
		Path:        "/api/v1/backup/validate",
		Summary:     "Validate backup document",
		Description: "Checks a backup document without restoring it",
		Tags:        []string{"Backup"},
	}, s.handleValidateBackupDocument)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBackup",
		Middlewares:   s.restoreLimit,
		Method:        http.MethodPost,
		Path:          "/api/v1/backups",
		Summary:       "Create backup",
		Description:   "Writes the catalog to a backup file in the data directory",
		Tags:          []string{"Backup"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBackup)

	huma.Register(s.api, huma.Operation{
		OperationID: "listBackups",
		Method:      http.MethodGet,
		Path:        "/api/v1/backups",
		Summary:     "List backups",
		Description: "Lists backup files, newest first",
		Tags:        []string{"Backup"},
	}, s.handleListBackups)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBackup",
		Method:      http.MethodGet,
		Path:        "/api/v1/backups/{id}",
		Summary:     "Get backup details",
		Tags:        []string{"Backup"},
	}, s.handleGetBackup)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBackup",
		Method:      http.MethodDelete,
		Path:        "/api/v1/backups/{id}",
		Summary:     "Delete backup",
		Tags:        []string{"Backup"},
	}, s.handleDeleteBackup)

	huma.Register(s.api, huma.Operation{
		OperationID: "restoreBackup",
		Middlewares: s.restoreLimit,
		Method:      http.MethodPost,
		Path:        "/api/v1/backups/{id}/restore",
		Summary:     "Restore from backup file",
		Tags:        []string{"Backup"},
	}, s.handleRestoreBackup)
}

// === DTOs ===

// ExportOutput wraps the exported document for Huma.
type ExportOutput struct {
	ContentDisposition string `header:"Content-Disposition"`
	Body               *backup.Document
}

// RestoreParams are the query options shared by the restore endpoints.
type RestoreParams struct {
	Mode          string `query:"mode" enum:"full,merge" default:"full" doc:"Replace the catalog or merge into it"`
	MergeStrategy string `query:"merge_strategy" enum:"keep_local,keep_backup" doc:"Conflict resolution in merge mode"`
	DryRun        bool   `query:"dry_run" doc:"Validate and count without writing"`
}

func (p RestoreParams) options() backup.RestoreOptions {
	return backup.RestoreOptions{
		Mode:          backup.RestoreMode(p.Mode),
		MergeStrategy: backup.MergeStrategy(p.MergeStrategy),
		DryRun:        p.DryRun,
	}
}

// ImportInput carries a raw backup document.
type ImportInput struct {
	RestoreParams
	RawBody []byte
}

// ValidateDocumentInput carries a raw backup document.
type ValidateDocumentInput struct {
	RawBody []byte
}

// EntityCountsResponse counts entities by type.
type EntityCountsResponse struct {
	Categories int `json:"categories" doc:"Categories"`
	Tools      int `json:"tools" doc:"Tools"`
	Prompts    int `json:"prompts" doc:"Prompts"`
}

// RestoreResponse contains the outcome of a restore.
type RestoreResponse struct {
	Imported EntityCountsResponse `json:"imported" doc:"Entities taken from the backup"`
	Skipped  EntityCountsResponse `json:"skipped" doc:"Backup entities dropped by the merge strategy"`
	Repaired int                  `json:"repaired" doc:"Dangling references repaired after restore"`
	DryRun   bool                 `json:"dry_run" doc:"Nothing was written"`
	Duration string               `json:"duration" doc:"Total restore duration"`
}

// RestoreOutput wraps the restore response for Huma.
type RestoreOutput struct {
	Body RestoreResponse
}

// ValidationResponse describes backup validity.
type ValidationResponse struct {
	Valid          bool                 `json:"valid" doc:"Whether the document can be restored"`
	ExpectedCounts EntityCountsResponse `json:"expected_counts" doc:"Entity counts in the document"`
	Errors         []string             `json:"errors,omitempty" doc:"Problems that block a restore"`
	Warnings       []string             `json:"warnings,omitempty" doc:"Problems a restore will repair"`
}

// ValidationOutput wraps the validation response for Huma.
type ValidationOutput struct {
	Body ValidationResponse
}

// BackupResponse describes a backup file.
type BackupResponse struct {
	ID        string    `json:"id" doc:"Backup identifier"`
	Size      int64     `json:"size" doc:"Backup file size in bytes"`
	CreatedAt time.Time `json:"created_at" doc:"When the backup was written"`
	Checksum  string    `json:"checksum,omitempty" doc:"SHA-256 checksum"`
}

// BackupOutput wraps a backup response for Huma.
type BackupOutput struct {
	Body BackupResponse
}

// ListBackupsResponse contains the backup files.
type ListBackupsResponse struct {
	Backups []BackupResponse `json:"backups" doc:"Backups, newest first"`
}

// ListBackupsOutput wraps the list backups response for Huma.
type ListBackupsOutput struct {
	Body ListBackupsResponse
}

// BackupIDInput identifies a backup by path.
type BackupIDInput struct {
	ID string `path:"id" doc:"Backup identifier"`
}

// RestoreBackupInput restores a stored backup.
type RestoreBackupInput struct {
	ID string `path:"id" doc:"Backup identifier"`
	RestoreParams
}

// === Handlers ===

func (s *Server) handleExportCatalog(_ context.Context, _ *struct{}) (*ExportOutput, error) {
	doc := s.services.Backup.Export()
	return &ExportOutput{
		ContentDisposition: fmt.Sprintf(`attachment; filename="aitools-%s.json"`, doc.ExportedAt.Format("20060102-150405")),
		Body:               doc,
	}, nil
}

func (s *Server) handleImportCatalog(ctx context.Context, input *ImportInput) (*RestoreOutput, error) {
	doc, err := decodeDocument(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid backup document", err)
	}

	result, err := s.services.Backup.Import(ctx, doc, input.options())
	if err != nil {
		return nil, huma.Error500InternalServerError("import failed", err)
	}
	return &RestoreOutput{Body: toRestoreResponse(result)}, nil
}

func (s *Server) handleValidateBackupDocument(_ context.Context, input *ValidateDocumentInput) (*ValidationOutput, error) {
	doc, err := decodeDocument(input.RawBody)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid backup document", err)
	}

	v := backup.Validate(doc)
	return &ValidationOutput{Body: ValidationResponse{
		Valid:          v.Valid,
		ExpectedCounts: toCountsResponse(v.ExpectedCounts),
		Errors:         v.Errors,
		Warnings:       v.Warnings,
	}}, nil
}

func (s *Server) handleCreateBackup(ctx context.Context, _ *struct{}) (*BackupOutput, error) {
	result, err := s.services.Backup.Create(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to create backup", err)
	}

	b, err := s.services.Backup.Get(ctx, result.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read backup", err)
	}
	return &BackupOutput{Body: BackupResponse{
		ID:        result.ID,
		Size:      result.Size,
		CreatedAt: b.CreatedAt,
		Checksum:  result.Checksum,
	}}, nil
}

func (s *Server) handleListBackups(ctx context.Context, _ *struct{}) (*ListBackupsOutput, error) {
	backups, err := s.services.Backup.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list backups", err)
	}

	resp := make([]BackupResponse, len(backups))
	for i, b := range backups {
		resp[i] = BackupResponse{ID: b.ID, Size: b.Size, CreatedAt: b.CreatedAt}
	}
	return &ListBackupsOutput{Body: ListBackupsResponse{Backups: resp}}, nil
}

func (s *Server) handleGetBackup(ctx context.Context, input *BackupIDInput) (*BackupOutput, error) {
	b, err := s.services.Backup.Get(ctx, input.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to get backup", err)
	}
	return &BackupOutput{Body: BackupResponse{ID: b.ID, Size: b.Size, CreatedAt: b.CreatedAt}}, nil
}

func (s *Server) handleDeleteBackup(ctx context.Context, input *BackupIDInput) (*MessageOutput, error) {
	if err := s.services.Backup.Delete(ctx, input.ID); err != nil {
		return nil, huma.Error500InternalServerError("failed to delete backup", err)
	}
	return &MessageOutput{Body: MessageResponse{Message: "Backup deleted"}}, nil
}

func (s *Server) handleRestoreBackup(ctx context.Context, input *RestoreBackupInput) (*RestoreOutput, error) {
	result, err := s.services.Backup.Restore(ctx, input.ID, input.options())
	if err != nil {
		return nil, huma.Error500InternalServerError("restore failed", err)
	}
	return &RestoreOutput{Body: toRestoreResponse(result)}, nil
}

func decodeDocument(raw []byte) (*backup.Document, error) {
	if len(raw) == 0 {
		return nil, backup.ErrInvalidDocument
	}
	var doc backup.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", backup.ErrInvalidDocument, err)
	}
	return &doc, nil
}

func toRestoreResponse(r *backup.RestoreResult) RestoreResponse {
	return RestoreResponse{
		Imported: toCountsResponse(r.Imported),
		Skipped:  toCountsResponse(r.Skipped),
		Repaired: r.Repaired,
		DryRun:   r.DryRun,
		Duration: r.Duration.String(),
	}
}

func toCountsResponse(c backup.EntityCounts) EntityCountsResponse {
	return EntityCountsResponse{
		Categories: c.Categories,
		Tools:      c.Tools,
		Prompts:    c.Prompts,
	}
}
