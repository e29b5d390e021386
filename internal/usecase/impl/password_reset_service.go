package impl

import (
	"context"
	"log/slog"
	"time"

	"fitflex/config"
	deliverycontext "fitflex/internal/delivery/context"
	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"
	"fitflex/internal/domain/service"
	"fitflex/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultResetTokenTTL = 30 * time.Minute

// passwordResetService implements the PasswordResetUsecase interface.
type passwordResetService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	secrets      service.ResetSecretService
	tokenTTL     time.Duration
	exposeSecret bool
	logger       *slog.Logger
}

// PasswordResetServiceParams holds dependencies for passwordResetService, injected by Fx.
type PasswordResetServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
	Secrets     service.ResetSecretService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(params PasswordResetServiceParams) usecase.PasswordResetUsecase {
	tokenTTL := defaultResetTokenTTL
	exposeSecret := false
	if params.Config != nil && params.Config.PasswordReset != nil {
		if params.Config.PasswordReset.TokenTTL > 0 {
			tokenTTL = params.Config.PasswordReset.TokenTTL
		}
		exposeSecret = params.Config.PasswordReset.ExposeSecret && !params.Config.IsProduction()
	}

	return &passwordResetService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		secrets:      params.Secrets,
		tokenTTL:     tokenTTL,
		exposeSecret: exposeSecret,
		logger:       params.Logger,
	}
}

func (srv *passwordResetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// IssueResetToken creates a reset token for the user behind the email. The
// response is identical whether or not the email matched an account, so the
// endpoint cannot be used to discover which emails are registered.
func (srv *passwordResetService) IssueResetToken(ctx context.Context, input *usecase.IssueResetTokenInput) (*usecase.IssueResetTokenOutput, error) {
	email := normalizeEmail(input.Email)
	expiresAt := time.Now().Add(srv.tokenTTL)
	output := &usecase.IssueResetTokenOutput{ExpiresAt: expiresAt}

	account, err := srv.accountRepo.FindByEmail(ctx, entity.AccountVariantUser, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.log(ctx).Info("Reset requested for unknown email", slog.String("email", email))

			return output, nil
		}

		return nil, errors.Wrap(err, "failed to find user for password reset")
	}

	secret, err := srv.secrets.NewSecret()
	if err != nil {
		srv.log(ctx).Error("Failed to generate reset secret", slog.Any("userID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate reset secret")
	}

	token := &entity.PasswordResetToken{
		UserID:    account.ID,
		TokenHash: srv.secrets.HashSecret(secret),
		ExpiresAt: expiresAt,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.ResetTokenRepo()

		// Opportunistic cleanup keeps the table from accumulating dead rows.
		if err := tokenRepo.DeleteExpired(ctx, time.Now()); err != nil {
			return errors.Wrap(err, "failed to clean up expired reset tokens")
		}

		return tokenRepo.Create(ctx, token)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute reset token transaction", slog.Any("userID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute reset token transaction")
	}

	srv.log(ctx).Info("Issued password reset token", slog.Any("userID", account.ID), slog.Time("expiresAt", expiresAt))

	if srv.exposeSecret {
		output.Secret = secret
	}

	return output, nil
}

// RedeemResetToken swaps the user's password for the one presented with a
// valid secret. Redemption burns every outstanding token for the user, so a
// secret works at most once.
func (srv *passwordResetService) RedeemResetToken(ctx context.Context, input *usecase.RedeemResetTokenInput) error {
	// Hash outside the transaction (bcrypt is CPU-bound).
	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		srv.log(ctx).Error("Failed to hash replacement password", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash replacement password")
	}

	tokenHash := srv.secrets.HashSecret(input.Secret)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.ResetTokenRepo()
		accountRepo := repoFactory.AccountRepo()

		token, err := tokenRepo.FindLatestValidByHash(ctx, tokenHash, time.Now())
		if err != nil {
			if errors.Is(err, repository.ErrResetTokenNotFound) {
				return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset token not found or expired")
			}

			return errors.Wrap(err, "failed to look up reset token")
		}

		if err := accountRepo.UpdatePasswordHash(ctx, entity.AccountVariantUser, token.UserID, newHash); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrResetTokenInvalid, "reset token references a missing account")
			}

			return errors.Wrap(err, "failed to update password hash")
		}

		// All of the user's tokens die with the one that was redeemed.
		if err := tokenRepo.DeleteByUserID(ctx, token.UserID); err != nil {
			return errors.Wrap(err, "failed to invalidate reset tokens")
		}

		srv.log(ctx).Info("Password reset completed", slog.Any("userID", token.UserID))

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute password reset transaction", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	return nil
}
