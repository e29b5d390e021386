// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"
	"fitflex/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the domain.AccountRepository interface using GORM.
// The two account variants live in separate tables; every query dispatches on
// the variant so the identity spaces never mix.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account of the given variant by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, variant entity.AccountVariant, id uuid.UUID) (*entity.Account, error) {
	if variant == entity.AccountVariantStudio {
		var studioM model.StudioModel
		if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&studioM).Error; err != nil {
			return nil, repo.mapLookupError(err, "failed to find studio by id")
		}

		return toStudioAccount(&studioM), nil
	}

	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		return nil, repo.mapLookupError(err, "failed to find user by id")
	}

	return toUserAccount(&userM), nil
}

// FindByEmail retrieves a single account by its normalized email.
// The caller normalizes; storage always holds the lower-cased form, so a plain
// equality match stays case-insensitive.
func (repo *accountRepository) FindByEmail(ctx context.Context, variant entity.AccountVariant, email string) (*entity.Account, error) {
	if variant == entity.AccountVariantStudio {
		var studioM model.StudioModel
		if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&studioM).Error; err != nil {
			return nil, repo.mapLookupError(err, "failed to find studio by email")
		}

		return toStudioAccount(&studioM), nil
	}

	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&userM).Error; err != nil {
		return nil, repo.mapLookupError(err, "failed to find user by email")
	}

	return toUserAccount(&userM), nil
}

// ExistsByNameOrEmail reports whether the name or email is taken within the variant.
// Run inside the registration transaction; the unique constraints on the table
// remain the authoritative guard against concurrent inserts.
func (repo *accountRepository) ExistsByNameOrEmail(ctx context.Context, variant entity.AccountVariant, name, email string) (bool, error) {
	var count int64

	query := repo.db.WithContext(ctx)
	if variant == entity.AccountVariantStudio {
		query = query.Model(&model.StudioModel{})
	} else {
		query = query.Model(&model.UserModel{})
	}

	if err := query.Where("name = ? OR email = ?", name, email).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check account existence")
	}

	return count > 0, nil
}

// Create persists a new account of either variant.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if account.Variant == entity.AccountVariantStudio {
		studioM := fromStudioAccount(account)
		if err := repo.db.WithContext(ctx).Create(studioM).Error; err != nil {
			return repo.mapCreateError(err, "failed to create studio")
		}
		account.ID = studioM.ID
		account.CreatedAt = studioM.CreatedAt
		account.UpdatedAt = studioM.UpdatedAt

		return nil
	}

	userM := fromUserAccount(account)
	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		return repo.mapCreateError(err, "failed to create user")
	}
	account.ID = userM.ID
	account.CreatedAt = userM.CreatedAt
	account.UpdatedAt = userM.UpdatedAt

	return nil
}

// UpdatePasswordHash replaces the stored hash for an account.
func (repo *accountRepository) UpdatePasswordHash(ctx context.Context, variant entity.AccountVariant, id uuid.UUID, newHash string) error {
	query := repo.db.WithContext(ctx)
	if variant == entity.AccountVariantStudio {
		query = query.Model(&model.StudioModel{})
	} else {
		query = query.Model(&model.UserModel{})
	}

	result := query.Where("id = ?", id).Update("password_hash", newHash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password hash")
	}

	// Zero rows means the account vanished mid-flight.
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func (repo *accountRepository) mapLookupError(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrAccountNotFound
	}

	return errors.Wrap(err, msg)
}

func (repo *accountRepository) mapCreateError(err error, msg string) error {
	// Convert PostgreSQL errors to domain errors. The unique constraint is
	// what makes the loser of a registration race observe a conflict instead
	// of inserting a duplicate row.
	if isUniqueConstraintViolation(err) {
		return domainerrors.ErrAccountConflict.WrapMessage("name or email already exists")
	}
	if isNotNullConstraintViolation(err) {
		return domainerrors.ErrAccountCreationFailed.WrapMessage("missing required account information")
	}

	return domainerrors.NewDatabaseExecuteError(err, msg)
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

func toUserAccount(data *model.UserModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Variant:      entity.AccountVariantUser,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromUserAccount(data *entity.Account) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
	}
}

func toStudioAccount(data *model.StudioModel) *entity.Account {
	if data == nil {
		return nil
	}

	location := ""
	if data.Location != nil {
		location = *data.Location
	}

	return &entity.Account{
		ID:           data.ID,
		Variant:      entity.AccountVariantStudio,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Location:     location,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

func fromStudioAccount(data *entity.Account) *model.StudioModel {
	if data == nil {
		return nil
	}

	var location *string
	if data.Location != "" {
		location = &data.Location
	}

	return &model.StudioModel{
		ID:           data.ID,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Location:     location,
	}
}
