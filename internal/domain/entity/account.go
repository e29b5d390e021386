// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// AccountVariant is the kind of account: a regular user or a studio.
// The two variants are disjoint identity spaces that share the login flow.
type AccountVariant string

const (
	// AccountVariantUser indicates a regular end-user account.
	AccountVariantUser AccountVariant = "user"
	// AccountVariantStudio indicates a studio account that owns classes.
	AccountVariantStudio AccountVariant = "studio"
)

// String returns the string representation of the AccountVariant.
func (v AccountVariant) String() string {
	return string(v)
}

// IsValid checks if the AccountVariant is a valid value.
func (v AccountVariant) IsValid() bool {
	switch v {
	case AccountVariantUser, AccountVariantStudio:
		return true
	default:
		return false
	}
}

// Account represents a single credentialed identity, either a user or a studio.
// The email is stored in its normalized lower-cased form so lookups stay
// case-insensitive without relying on database collation.
type Account struct {
	ID           uuid.UUID      // The unique identifier for the account.
	Variant      AccountVariant // Which identity space the account belongs to.
	Name         string         // Display name, unique within the variant.
	Email        string         // Normalized email, unique within the variant.
	PasswordHash string         // The bcrypt-hashed password. Never exposed outward.
	Location     string         // Optional physical location. Studio accounts only.
	CreatedAt    time.Time      // Timestamp of when this account was created.
	UpdatedAt    time.Time      // Timestamp of the last modification to this account.
}

// Identity is the role-tagged view of an account returned to callers after
// registration or login. It deliberately carries no credential material.
type Identity struct {
	ID          uuid.UUID      `json:"id"`
	DisplayName string         `json:"displayName"`
	Email       string         `json:"email"`
	Role        AccountVariant `json:"role"`
}

// IdentityOf builds the outward-facing identity view for an account.
func IdentityOf(account *Account) *Identity {
	if account == nil {
		return nil
	}

	return &Identity{
		ID:          account.ID,
		DisplayName: account.Name,
		Email:       account.Email,
		Role:        account.Variant,
	}
}
