package repositories

import (
	"context"

	"docvault/internal/domain/models"
)

// GrantStore holds ephemeral unlock grants, keyed by folder ID. Entries
// are independent: updates must be atomic per folder but no cross-folder
// ordering is required. Implementations are an in-process map or a
// shared cache for multi-replica deployments.
type GrantStore interface {
	// Put stores or replaces the grant for a folder
	Put(ctx context.Context, grant *models.UnlockGrant) error

	// Get returns the grant for a folder, or nil if none exists
	Get(ctx context.Context, folderID string) (*models.UnlockGrant, error)

	// Delete removes the grant for a folder; removing an absent grant
	// is not an error
	Delete(ctx context.Context, folderID string) error

	// CompareAndDelete removes the grant for a folder only if the stored
	// grant still matches the given snapshot (same UnlockedAt). It
	// returns whether the grant was removed, so a sweep that raced with
	// a fresh unlock leaves the new grant untouched.
	CompareAndDelete(ctx context.Context, grant *models.UnlockGrant) (bool, error)

	// All returns every live grant; used by the re-lock sweep
	All(ctx context.Context) ([]models.UnlockGrant, error)
}
