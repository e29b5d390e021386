// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"fitflex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the credential store for both account variants.
// Every operation is scoped to one variant; the two identity spaces never mix.
// The application layer depends on this interface, not the concrete implementation.
type AccountRepository interface {
	// FindByID retrieves a single account of the given variant by its unique ID.
	FindByID(ctx context.Context, variant entity.AccountVariant, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account of the given variant by its
	// normalized (lower-cased) email. At most one record can match.
	FindByEmail(ctx context.Context, variant entity.AccountVariant, email string) (*entity.Account, error)

	// ExistsByNameOrEmail reports whether the name or email is already taken
	// within the variant. Callers must run this inside the same transaction as
	// the subsequent Create so concurrent registrations cannot both pass.
	ExistsByNameOrEmail(ctx context.Context, variant entity.AccountVariant, name, email string) (bool, error)

	// Create persists a new account. A unique-constraint violation caused by a
	// concurrent insert surfaces as a conflict error, never as a duplicate row.
	Create(ctx context.Context, account *entity.Account) error

	// UpdatePasswordHash replaces the stored password hash for the account.
	// Returns ErrAccountNotFound when the account vanished mid-flight.
	UpdatePasswordHash(ctx context.Context, variant entity.AccountVariant, id uuid.UUID, newHash string) error
}
