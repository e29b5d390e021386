// Package service defines interfaces for core, stateless domain logic.
package service

import (
	"github.com/google/uuid"

	"fitflex/internal/domain/entity"
)

// AccessClaims is the validated content of an access token.
type AccessClaims struct {
	AccountID uuid.UUID
	Role      entity.AccountVariant
}

// TokenService issues and validates the short-lived access tokens returned at
// login. Tokens are stateless; the only persisted credential material in the
// system is the bcrypt password hash and the reset-token hashes.
type TokenService interface {
	// GenerateAccessToken creates a signed access token carrying the account's
	// ID and role.
	GenerateAccessToken(accountID uuid.UUID, role entity.AccountVariant) (string, error)

	// ValidateToken checks signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*AccessClaims, error)
}
