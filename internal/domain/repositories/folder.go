package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// FolderRepository defines data access operations for folders
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder by ID within a tenant
	GetByID(ctx context.Context, id, tenantID string) (*models.Folder, error)

	// GetByIDOnly retrieves a folder by ID without tenant scoping, for
	// callers that perform the tenant check themselves
	GetByIDOnly(ctx context.Context, id string) (*models.Folder, error)

	// Rename updates a folder's name
	Rename(ctx context.Context, id, tenantID, name string) (*models.Folder, error)

	// SetLockState updates the lock flag and stored password atomically.
	// Last writer wins on the lock/password fields.
	SetLockState(ctx context.Context, id string, locked bool, password *string) error

	// Delete deletes a folder row; the database cascades to all
	// descendant folders and their files
	Delete(ctx context.Context, id, tenantID string) error

	// ListChildren lists immediate child folders (folderID nil = roots)
	ListChildren(ctx context.Context, folderID *string, tenantID string) ([]models.Folder, error)

	// GetAllByTenant retrieves all folders in a tenant (flat list) so
	// subtree walks run over an in-memory adjacency map instead of one
	// round trip per node
	GetAllByTenant(ctx context.Context, tenantID string) ([]models.Folder, error)
}
