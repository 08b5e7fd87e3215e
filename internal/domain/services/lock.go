package services

import (
	"context"

	"docvault/internal/domain/models"
)

// LockService owns per-folder lock state: the locked/unlocked flag, the
// stored password, and the ephemeral unlock grants. The state machine is
//
//	LOCKED --unlock(password)--> UNLOCKED (expires after the unlock
//	window) --timeout or explicit lock--> LOCKED
//
// Concurrent lock calls race-safely overwrite state (last writer wins);
// locking is a tenant-admin-only, low-frequency operation.
type LockService interface {
	// Lock locks a folder with the given password and invalidates any
	// existing unlock grant. A folder that is already locked returns
	// ErrAlreadyLocked; unlock it first to rotate the password.
	Lock(ctx context.Context, caller models.Caller, folderID, password string) (*models.Folder, error)

	// Unlock verifies the password, clears the lock flag, and records
	// an unlock grant. The password is retained on the folder so it can
	// be displayed again later; locking is an access gate, not a
	// password reset.
	Unlock(ctx context.Context, caller models.Caller, folderID, password string) (*models.Folder, error)

	// Verify is a pure check with no mutation; it returns true
	// automatically if the folder is not locked
	Verify(ctx context.Context, caller models.Caller, folderID, password string) (bool, error)

	// RelockExpired removes every grant whose age has reached the unlock
	// window and re-locks the corresponding folder with the grant's
	// retained password. It returns the number of folders re-locked.
	RelockExpired(ctx context.Context) (int, error)
}
