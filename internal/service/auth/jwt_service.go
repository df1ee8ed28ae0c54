package auth

import (
	"context"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT access tokens. It is the
// session token service: it binds a bearer credential to a user identity
// and resolves one back on inbound requests.
type JWTService interface {
	// GenerateToken creates a signed access token for the user.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken validates an access token string and extracts the
	// claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the identity extracted from a validated token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID
}
