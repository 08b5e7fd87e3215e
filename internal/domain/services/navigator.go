package services

import (
	"context"

	"docvault/internal/domain/models"
)

// NavigatorService resolves a folder's visible contents under the
// current set of password-verified folders.
type NavigatorService interface {
	// Open returns a folder and its immediate children. If the folder
	// is locked and neither an unlock grant nor a valid provided
	// password exists, the result carries RequiresPassword=true: child
	// folder names stay visible so a user can see structure and decide
	// whether to request access, but file listings are withheld.
	Open(ctx context.Context, caller models.Caller, folderID string, providedPassword string) (*FolderView, error)

	// ListChildren lists sibling folders at one level. Locked folders
	// are excluded entirely unless includeLocked is set (privileged
	// callers); this is a coarser visibility policy than Open.
	ListChildren(ctx context.Context, caller models.Caller, parentID *string, includeLocked bool) ([]models.Folder, error)
}

// FolderView is the result of opening a folder
type FolderView struct {
	Folder           *models.Folder  `json:"folder"`
	Folders          []models.Folder `json:"folders"`
	Files            []models.File   `json:"files"`
	RequiresPassword bool            `json:"requires_password"`
}
