package auth

import "docvault/internal/domain/models"

// JWTVerifier validates access tokens and extracts claims
type JWTVerifier interface {
	// VerifyToken validates a JWT token and returns its claims
	VerifyToken(tokenString string) (*models.AccessClaims, error)

	// Close releases verifier resources
	Close() error
}
