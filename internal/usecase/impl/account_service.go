// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "fitflex/internal/delivery/context"
	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"
	"fitflex/internal/domain/service"
	"fitflex/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AccountServiceParams holds dependencies for accountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// normalizeEmail folds an email address into its canonical stored form.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RegisterUser orchestrates the complete user registration process.
func (srv *accountService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	account := &entity.Account{
		Variant: entity.AccountVariantUser,
		Name:    strings.TrimSpace(input.Name),
		Email:   normalizeEmail(input.Email),
	}

	return srv.executeRegistration(ctx, account, input.Password)
}

// RegisterStudio orchestrates the complete studio registration process.
func (srv *accountService) RegisterStudio(ctx context.Context, input *usecase.RegisterStudioInput) (*usecase.RegisterOutput, error) {
	account := &entity.Account{
		Variant:  entity.AccountVariantStudio,
		Name:     strings.TrimSpace(input.Name),
		Email:    normalizeEmail(input.Email),
		Location: strings.TrimSpace(input.Location),
	}

	return srv.executeRegistration(ctx, account, input.Password)
}

func (srv *accountService) executeRegistration(ctx context.Context, account *entity.Account, password string) (*usecase.RegisterOutput, error) {
	if account.Name == "" || account.Email == "" || password == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("name, email and password are required")
	}

	srv.log(ctx).Info("Starting registration", slog.Any("variant", account.Variant), slog.String("email", account.Email))

	// Hash outside the transaction (bcrypt is CPU-bound).
	hashedPassword, err := srv.hasher.Hash(password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("variant", account.Variant), slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}
	account.PasswordHash = hashedPassword

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		// The check gives a clean conflict for the common case; the table's
		// unique constraints settle concurrent registrations.
		taken, err := accountRepo.ExistsByNameOrEmail(ctx, account.Variant, account.Name, account.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check account existence")
		}
		if taken {
			return domainerrors.ErrAccountConflict.WrapMessage("name or email already registered")
		}

		if err := accountRepo.Create(ctx, account); err != nil {
			return errors.Wrap(err, "failed to create account during registration")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.Any("variant", account.Variant), slog.String("email", account.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("variant", account.Variant), slog.Any("accountID", account.ID))

	return &usecase.RegisterOutput{Identity: entity.IdentityOf(account)}, nil
}

// Login orchestrates the login process. The two account variants share one
// login endpoint; users are checked before studios when an email exists in
// both tables.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := normalizeEmail(input.Email)
	password := strings.TrimSpace(input.Password)
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	account, err := srv.loadLoginAccount(ctx, email)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	if !srv.hasher.Check(password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(account.ID, account.Variant)
	if err != nil {
		srv.log(ctx).Error("Failed to generate access token", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("Logged in successfully", slog.Any("accountID", account.ID), slog.Any("variant", account.Variant))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		Identity:    entity.IdentityOf(account),
	}, nil
}

func (srv *accountService) loadLoginAccount(ctx context.Context, email string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, entity.AccountVariantUser, email)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, repository.ErrAccountNotFound) {
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	account, err = srv.accountRepo.FindByEmail(ctx, entity.AccountVariantStudio, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "no account registered for email")
		}

		return nil, errors.Wrap(err, "failed to find studio by email")
	}

	return account, nil
}
