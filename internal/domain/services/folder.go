package services

import (
	"context"

	"docvault/internal/domain/models"
)

// FolderService handles folder CRUD business logic. Deletion lives on
// LifecycleService because it cascades through external storage.
type FolderService interface {
	// CreateFolder creates a new folder under an existing parent (or at
	// the root). Folders are only ever created under existing
	// ancestors, which is what keeps the tree acyclic.
	CreateFolder(ctx context.Context, caller models.Caller, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, caller models.Caller, id string) (*models.Folder, error)

	// RenameFolder renames a folder
	RenameFolder(ctx context.Context, caller models.Caller, id string, req *RenameFolderRequest) (*models.Folder, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parent_id,omitempty"` // null for root folders
}

// RenameFolderRequest represents a folder rename request
type RenameFolderRequest struct {
	Name string `json:"name"`
}
