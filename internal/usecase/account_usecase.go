// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"fitflex/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterStudioInput defines the data required to register a new studio.
type RegisterStudioInput struct {
	Name     string
	Email    string
	Password string
	Location string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public identity.
type RegisterOutput struct {
	Identity *entity.Identity
}

// LoginOutput returns the generated access token after a successful login.
type LoginOutput struct {
	AccessToken string
	Identity    *entity.Identity
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	RegisterUser(ctx context.Context, input *RegisterUserInput) (*RegisterOutput, error)
	RegisterStudio(ctx context.Context, input *RegisterStudioInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
}
