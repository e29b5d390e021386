// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken represents one outstanding password-reset link for a user
// account. Only the SHA-256 hash of the random secret is ever persisted; the
// plaintext secret is shown to the caller exactly once at issuance.
// A token is implicitly single-use: redemption deletes every outstanding token
// for the owning account, and expired tokens are garbage even if never used.
type PasswordResetToken struct {
	ID        uuid.UUID // The unique ID for this specific token record.
	UserID    uuid.UUID // Links the token to the user account it can reset.
	TokenHash string    // SHA-256 hash of the raw secret for secure comparison.
	ExpiresAt time.Time // The exact time when this token becomes invalid.
	CreatedAt time.Time // Timestamp of issuance; redemption picks the newest match.
}
