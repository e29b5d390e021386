// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"fitflex/internal/domain/entity"

	"github.com/google/uuid"
)

// BookingRepository persists the booking ledger. Bookings are append-only.
type BookingRepository interface {
	// Create persists a new booking.
	Create(ctx context.Context, booking *entity.Booking) error

	// CountByClassID returns the number of bookings recorded for a class.
	// Run inside the same transaction as the capacity check and insert.
	CountByClassID(ctx context.Context, classID uuid.UUID) (int64, error)

	// ExistsByClassID reports whether any booking references the class.
	ExistsByClassID(ctx context.Context, classID uuid.UUID) (bool, error)

	// ListByUserID returns the user's bookings ordered by creation time.
	// A fresh query on every call.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
}
