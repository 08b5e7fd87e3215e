package services

import (
	"context"
	"time"

	"docvault/internal/domain/models"
)

// LifecycleService owns the two deletion lifecycles: recursive
// cascading delete of folders/tenants (including best-effort cleanup of
// externally stored blobs) and the time-delayed, reversible soft-delete
// state for files.
//
// External cleanup is attempted alongside the structural delete but is
// not transactional with it: an orphaned blob is an acceptable failure
// mode, an orphaned database row pointing at a deleted blob is not.
type LifecycleService interface {
	// DeleteFolder collects every external key in the folder's subtree,
	// subtracts the shared template set, deletes the remaining blobs
	// best-effort, then cascade-deletes the rows
	DeleteFolder(ctx context.Context, caller models.Caller, folderID string) error

	// DeleteTenant does the same across the tenant's entire forest and
	// removes the tenant row
	DeleteTenant(ctx context.Context, caller models.Caller, tenantID string) error

	// SoftDelete marks a file deleted; reversible
	SoftDelete(ctx context.Context, caller models.Caller, fileID string) (*models.File, error)

	// Restore clears the soft-delete marker
	Restore(ctx context.Context, caller models.Caller, fileID string) (*models.File, error)

	// PermanentDelete removes a single file's blob (best-effort) and
	// hard-deletes its row; identical to one purge step but invoked
	// synchronously by a user
	PermanentDelete(ctx context.Context, caller models.Caller, fileID string) error

	// Purge hard-deletes every file soft-deleted at or before the
	// cutoff, continuing past per-file blob failures. Idempotent: a
	// second run over the same cutoff is a no-op.
	Purge(ctx context.Context, cutoff time.Time) (int, error)
}
