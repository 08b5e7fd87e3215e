package models

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the JWT claims structure issued by the identity
// provider. TenantID and Role are custom claims set at token issuance.
type AccessClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string `json:"email"`
	TenantID             string `json:"tenant_id"`
	Role                 string `json:"role"` // "admin" or "member"
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *AccessClaims) GetUserID() string {
	return c.Subject
}

// Caller converts verified claims into the explicit Caller passed to
// services. Admins are the privileged callers.
func (c *AccessClaims) Caller() Caller {
	return Caller{
		UserID:       c.Subject,
		TenantID:     c.TenantID,
		IsPrivileged: c.Role == "admin",
	}
}
