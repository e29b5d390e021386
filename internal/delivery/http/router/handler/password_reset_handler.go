package handler

import (
	"log/slog"
	"net/http"
	"time"

	"fitflex/internal/delivery/http/response"
	"fitflex/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PasswordResetHandler holds dependencies for the password reset endpoints.
type PasswordResetHandler struct {
	uc     usecase.PasswordResetUsecase
	logger *slog.Logger
}

// NewPasswordResetHandler is the constructor for PasswordResetHandler, injected by Fx.
func NewPasswordResetHandler(uc usecase.PasswordResetUsecase, logger *slog.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{uc: uc, logger: logger}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type forgotPasswordResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
	Secret    string    `json:"secret,omitempty"`
}

type resetPasswordRequest struct {
	Secret      string `json:"secret" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,max=72"`
}

// ForgotPassword handles the reset token request. The answer is the same
// whether or not the email belongs to an account.
func (h *PasswordResetHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset request input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.IssueResetToken(c.Request().Context(), &usecase.IssueResetTokenInput{Email: req.Email})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, forgotPasswordResponse{
		ExpiresAt: output.ExpiresAt,
		Secret:    output.Secret,
	}, "If the email is registered, a reset token has been issued")
}

// ResetPassword handles the reset token redemption request.
func (h *PasswordResetHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	err := h.uc.RedeemResetToken(c.Request().Context(), &usecase.RedeemResetTokenInput{
		Secret:      req.Secret,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password has been reset")
}
