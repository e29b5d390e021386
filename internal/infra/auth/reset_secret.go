// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	"github.com/pkg/errors"

	"fitflex/internal/domain/service"
)

// secretByteLen yields 64 hex characters of secret, comfortably beyond brute force.
const secretByteLen = 32

// resetSecretService implements ResetSecretService with crypto/rand secrets
// and SHA-256 storage hashes, the same scheme used for hashing session tokens.
type resetSecretService struct{}

// NewResetSecretService is the constructor for resetSecretService.
func NewResetSecretService() service.ResetSecretService {
	return &resetSecretService{}
}

// NewSecret returns a fresh hex-encoded random secret.
func (s *resetSecretService) NewSecret() (string, error) {
	buf := make([]byte, secretByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "failed to read random bytes for reset secret")
	}

	return hex.EncodeToString(buf), nil
}

// HashSecret derives the SHA-256 hex digest stored in place of the secret.
func (s *resetSecretService) HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:])
}
