// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"fitflex/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrResetTokenNotFound is returned when no valid password-reset token matches.
var ErrResetTokenNotFound = errors.New("password reset token not found")

// ResetTokenRepository manages the separate password_reset_tokens table.
// Multiple outstanding tokens per account are permitted; redemption targets the
// most recently issued match and then invalidates the whole set in bulk.
type ResetTokenRepository interface {
	// Create persists a new reset token record (hash + expiry, never the secret).
	Create(ctx context.Context, token *entity.PasswordResetToken) error

	// FindLatestValidByHash retrieves the newest token whose hash matches and
	// whose expiry is still in the future at the given instant, taking a row
	// lock on the match. Run inside the redemption transaction so concurrent
	// redemptions of the same secret serialize; the loser re-evaluates after
	// the winner's delete commits and finds nothing.
	// Returns ErrResetTokenNotFound when nothing matches.
	FindLatestValidByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.PasswordResetToken, error)

	// DeleteByUserID removes every outstanding token for the user, redeemed or
	// not, so no other issued link stays trustable after a redemption.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired removes all expired tokens. Housekeeping only.
	DeleteExpired(ctx context.Context, now time.Time) error
}
