package usecase

import (
	"context"
	"time"
)

// --- Input DTOs ---

// IssueResetTokenInput identifies the account requesting a password reset.
type IssueResetTokenInput struct {
	Email string
}

// RedeemResetTokenInput carries the reset secret and the replacement password.
type RedeemResetTokenInput struct {
	Secret      string
	NewPassword string
}

// --- Output DTOs ---

// IssueResetTokenOutput is returned for every issue request, whether or not
// the email matched an account. Secret is populated only when the deployment
// is configured to expose it; production delivers the secret out of band.
type IssueResetTokenOutput struct {
	ExpiresAt time.Time
	Secret    string
}

// PasswordResetUsecase defines the interface for the password reset flow.
type PasswordResetUsecase interface {
	IssueResetToken(ctx context.Context, input *IssueResetTokenInput) (*IssueResetTokenOutput, error)
	RedeemResetToken(ctx context.Context, input *RedeemResetTokenInput) error
}
