package repositories

import (
	"context"
	"time"

	"docvault/internal/domain/models"
)

// FileRepository defines data access operations for files
type FileRepository interface {
	// Create creates a new file row
	Create(ctx context.Context, file *models.File) error

	// GetByID retrieves a file by ID, including soft-deleted rows
	GetByID(ctx context.Context, id string) (*models.File, error)

	// ListByFolder lists live (not soft-deleted) files in a folder
	ListByFolder(ctx context.Context, folderID string) ([]models.File, error)

	// ListByFolders lists live files across a set of folders in one query
	ListByFolders(ctx context.Context, folderIDs []string) ([]models.File, error)

	// ListAllByFolders lists all files across a set of folders,
	// soft-deleted included; used by cascading delete to collect
	// external keys for the whole subtree
	ListAllByFolders(ctx context.Context, folderIDs []string) ([]models.File, error)

	// ListDeleted lists soft-deleted files for a tenant (trash view)
	ListDeleted(ctx context.Context, tenantID string) ([]models.File, error)

	// ListDeletedBefore lists files soft-deleted at or before the cutoff,
	// across all tenants; used by the purge sweep
	ListDeletedBefore(ctx context.Context, cutoff time.Time) ([]models.File, error)

	// CountLiveByFolders returns live file counts keyed by folder ID
	CountLiveByFolders(ctx context.Context, folderIDs []string) (map[string]int, error)

	// SetDeletedAt sets or clears the soft-delete marker
	SetDeletedAt(ctx context.Context, id string, deletedAt *time.Time) (*models.File, error)

	// Delete hard-deletes a file row
	Delete(ctx context.Context, id string) error
}
