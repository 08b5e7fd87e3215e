package models

// Caller identifies who is performing an operation. It is built once by
// the auth middleware and passed explicitly into every service call
// instead of re-deriving privilege inline.
type Caller struct {
	UserID       string `json:"user_id"`
	TenantID     string `json:"tenant_id"`
	IsPrivileged bool   `json:"is_privileged"`
}
