package postgres

import (
	"context"
	"time"

	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"
	"fitflex/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// resetTokenRepository implements the domain.ResetTokenRepository interface using GORM.
type resetTokenRepository struct {
	db *gorm.DB
}

// NewResetTokenRepository is the constructor for resetTokenRepository.
func NewResetTokenRepository(db *gorm.DB) repository.ResetTokenRepository {
	return &resetTokenRepository{db: db}
}

// Create persists a new reset token record.
func (repo *resetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	tokenM := fromResetToken(token)
	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrAccountNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create reset token")
	}
	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindLatestValidByHash retrieves the newest unexpired token matching the hash,
// under a row lock. A concurrent redemption of the same secret blocks here and
// re-evaluates after the first transaction commits its delete, so the token can
// never be redeemed twice. Only the hash ever touches storage; the raw secret
// never does.
func (repo *resetTokenRepository) FindLatestValidByHash(ctx context.Context, tokenHash string, now time.Time) (*entity.PasswordResetToken, error) {
	var tokenM model.PasswordResetTokenModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		Order("created_at DESC").
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResetTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find reset token by hash")
	}

	return toResetToken(&tokenM), nil
}

// DeleteByUserID removes every reset token issued to the user. Called after a
// successful redemption so all outstanding tokens die together.
func (repo *resetTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.PasswordResetTokenModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete reset tokens by user")
	}

	return nil
}

// DeleteExpired garbage-collects tokens whose expiry has passed.
func (repo *resetTokenRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	err := repo.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&model.PasswordResetTokenModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete expired reset tokens")
	}

	return nil
}

// --- Mapper Functions ---

func toResetToken(data *model.PasswordResetTokenModel) *entity.PasswordResetToken {
	if data == nil {
		return nil
	}

	return &entity.PasswordResetToken{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromResetToken(data *entity.PasswordResetToken) *model.PasswordResetTokenModel {
	if data == nil {
		return nil
	}

	return &model.PasswordResetTokenModel{
		ID:        data.ID,
		UserID:    data.UserID,
		TokenHash: data.TokenHash,
		ExpiresAt: data.ExpiresAt,
	}
}
