package services

import (
	"context"

	"docvault/internal/domain/models"
)

// StatsService computes recursive folder statistics. Stats ignore lock
// state (a privileged, whole-subtree read) and are safe to run
// concurrently with mutations; a slightly stale tree is acceptable.
type StatsService interface {
	// Stats returns direct and recursive folder/file counts for a
	// folder's subtree
	Stats(ctx context.Context, caller models.Caller, folderID string) (*models.FolderStats, error)
}
