package config

import "time"

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (names should be short and descriptive).
	MaxFolderNameLength = 255

	// MaxFileNameLength is the maximum length for file names.
	// Same as folder names for consistency.
	MaxFileNameLength = 255

	// MaxTenantNameLength is the maximum length for tenant names.
	MaxTenantNameLength = 255

	// MaxFolderPasswordLength bounds folder lock passwords.
	MaxFolderPasswordLength = 128
)

const (
	// UnlockWindow is how long an unlock grant stays valid before the
	// sweep re-locks the folder.
	UnlockWindow = 5 * time.Minute

	// RelockInterval is how often the re-lock sweep runs.
	RelockInterval = time.Minute

	// TrashRetention is how long a soft-deleted file is held before it
	// becomes eligible for purge.
	TrashRetention = 5 * 24 * time.Hour

	// PurgeInterval is how often the purge sweep runs.
	PurgeInterval = time.Hour

	// BlobDeleteConcurrency bounds parallel external-storage deletes
	// during cascading and purge deletes.
	BlobDeleteConcurrency = 8
)
