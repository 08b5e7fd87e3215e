package models

import "time"

// Folder is a node in a tenant's folder tree. ParentID is either nil
// (root level) or another folder's ID within the same tenant; cycles are
// impossible by construction because folders are only ever created under
// an existing ancestor.
//
// A folder's lock state is independent of its ancestors': a child is not
// locked just because its parent is. The lock password is stored in the
// clear so privileged users can view it for recovery; locking is an
// access gate, not a password reset.
type Folder struct {
	ID        string     `json:"id" db:"id"`
	TenantID  string     `json:"tenant_id" db:"tenant_id"`
	ParentID  *string    `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string     `json:"name" db:"name"`
	IsLocked  bool       `json:"is_locked" db:"is_locked"`
	Password  *string    `json:"-" db:"password"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}
