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

// bookingRepository implements the domain.BookingRepository interface using GORM.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository is the constructor for bookingRepository.
func NewBookingRepository(db *gorm.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

// Create persists a new booking.
func (repo *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	bookingM := fromBooking(booking)
	if err := repo.db.WithContext(ctx).Create(bookingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrClassNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create booking")
	}
	booking.ID = bookingM.ID
	booking.CreatedAt = bookingM.CreatedAt

	return nil
}

// CountByClassID returns the number of bookings held against a class.
// Run after FindByIDForUpdate inside the booking transaction so the count
// cannot drift while the class row is locked.
func (repo *bookingRepository) CountByClassID(ctx context.Context, classID uuid.UUID) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("class_id = ?", classID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count bookings by class")
	}

	return count, nil
}

// ExistsByClassID reports whether any booking references the class.
func (repo *bookingRepository) ExistsByClassID(ctx context.Context, classID uuid.UUID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).
		Model(&model.BookingModel{}).
		Where("class_id = ?", classID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "failed to check bookings by class")
	}

	return count > 0, nil
}

// ListByUserID retrieves a user's bookings, oldest first.
func (repo *bookingRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	var bookingMs []*model.BookingModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&bookingMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list bookings by user")
	}

	bookings := make([]*entity.Booking, 0, len(bookingMs))
	for _, bookingM := range bookingMs {
		bookings = append(bookings, toBooking(bookingM))
	}

	return bookings, nil
}

// --- Mapper Functions ---

func toBooking(data *model.BookingModel) *entity.Booking {
	if data == nil {
		return nil
	}

	return &entity.Booking{
		ID:            data.ID,
		UserID:        data.UserID,
		ClassID:       data.ClassID,
		PaymentStatus: data.PaymentStatus,
		CreatedAt:     data.CreatedAt,
	}
}

func fromBooking(data *entity.Booking) *model.BookingModel {
	if data == nil {
		return nil
	}

	return &model.BookingModel{
		ID:            data.ID,
		UserID:        data.UserID,
		ClassID:       data.ClassID,
		PaymentStatus: data.PaymentStatus,
	}
}
