package models

import "time"

// UnlockGrant records that a locked folder's password has been verified.
// Grants are ephemeral: they live in the grant store (in-process map or
// shared cache), never in the durable tree store, and are destroyed by
// the re-lock sweep once their age reaches the unlock window, or by an
// explicit lock call.
type UnlockGrant struct {
	FolderID   string    `json:"folder_id"`
	Password   string    `json:"password"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// ExpiredAt reports whether the grant's age has reached the given window
// as of now.
func (g *UnlockGrant) ExpiredAt(now time.Time, window time.Duration) bool {
	return now.Sub(g.UnlockedAt) >= window
}
