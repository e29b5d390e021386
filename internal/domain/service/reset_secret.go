// Package service defines interfaces for core, stateless domain logic.
package service

// ResetSecretService generates and hashes the opaque secrets used for password
// reset links. The plaintext secret leaves the system exactly once, at
// issuance; only its hash is ever stored or compared.
type ResetSecretService interface {
	// NewSecret returns a fresh cryptographically random secret.
	NewSecret() (string, error)

	// HashSecret derives the irreversible hash persisted for a secret.
	// Deterministic, so a presented secret can be matched against storage.
	HashSecret(secret string) string
}
