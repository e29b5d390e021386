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
	"gorm.io/gorm/clause"
)

// classRepository implements the domain.ClassRepository interface using GORM.
type classRepository struct {
	db *gorm.DB
}

// NewClassRepository is the constructor for classRepository.
func NewClassRepository(db *gorm.DB) repository.ClassRepository {
	return &classRepository{db: db}
}

// Create persists a new class.
func (repo *classRepository) Create(ctx context.Context, class *entity.Class) error {
	classM := fromClass(class)
	if err := repo.db.WithContext(ctx).Create(classM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrClassNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required class information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create class")
	}
	class.ID = classM.ID
	class.CreatedAt = classM.CreatedAt
	class.UpdatedAt = classM.UpdatedAt

	return nil
}

// FindByID retrieves a single class by its unique ID.
func (repo *classRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	var classM model.ClassModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&classM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrClassNotFound
		}

		return nil, errors.Wrap(err, "failed to find class by id")
	}

	return toClass(&classM), nil
}

// FindByIDForUpdate retrieves a class and takes a row lock on it.
// Must run inside a transaction; the lock serializes concurrent bookings
// against the same class so the capacity check stays honest.
func (repo *classRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Class, error) {
	var classM model.ClassModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&classM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrClassNotFound
		}

		return nil, errors.Wrap(err, "failed to lock class row")
	}

	return toClass(&classM), nil
}

// Update saves the full class record.
func (repo *classRepository) Update(ctx context.Context, class *entity.Class) error {
	classM := fromClass(class)
	// Updates skips zero values, so persist the patched entity column by column
	// through Select("*") to let cleared optional fields write NULL.
	result := repo.db.WithContext(ctx).
		Model(&model.ClassModel{}).
		Where("id = ?", class.ID).
		Select("name", "datetime", "sport_type", "credit_cost", "capacity").
		Updates(map[string]any{
			"name":        classM.Name,
			"datetime":    classM.StartsAt,
			"sport_type":  classM.SportType,
			"credit_cost": classM.CreditCost,
			"capacity":    classM.Capacity,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update class")
	}
	if result.RowsAffected == 0 {
		return repository.ErrClassNotFound
	}

	return nil
}

// Delete removes a class by ID.
func (repo *classRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ClassModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete class")
	}
	if result.RowsAffected == 0 {
		return repository.ErrClassNotFound
	}

	return nil
}

// List retrieves classes ordered by start time, optionally filtered by studio.
func (repo *classRepository) List(ctx context.Context, studioID *uuid.UUID) ([]*entity.Class, error) {
	query := repo.db.WithContext(ctx).Model(&model.ClassModel{})
	if studioID != nil {
		query = query.Where("studio_id = ?", *studioID)
	}

	var classMs []*model.ClassModel
	if err := query.Order("datetime ASC").Find(&classMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list classes")
	}

	classes := make([]*entity.Class, 0, len(classMs))
	for _, classM := range classMs {
		classes = append(classes, toClass(classM))
	}

	return classes, nil
}

// --- Mapper Functions ---

func toClass(data *model.ClassModel) *entity.Class {
	if data == nil {
		return nil
	}

	sportType := ""
	if data.SportType != nil {
		sportType = *data.SportType
	}

	return &entity.Class{
		ID:         data.ID,
		StudioID:   data.StudioID,
		Name:       data.Name,
		StartsAt:   data.StartsAt,
		SportType:  sportType,
		CreditCost: data.CreditCost,
		Capacity:   data.Capacity,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromClass(data *entity.Class) *model.ClassModel {
	if data == nil {
		return nil
	}

	var sportType *string
	if data.SportType != "" {
		sportType = &data.SportType
	}

	return &model.ClassModel{
		ID:         data.ID,
		StudioID:   data.StudioID,
		Name:       data.Name,
		StartsAt:   data.StartsAt,
		SportType:  sportType,
		CreditCost: data.CreditCost,
		Capacity:   data.Capacity,
	}
}
