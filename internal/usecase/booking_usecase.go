package usecase

import (
	"context"

	"fitflex/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateBookingInput defines the data required to book a class seat.
type CreateBookingInput struct {
	UserID  uuid.UUID
	ClassID uuid.UUID
}

// ListBookingsInput identifies whose bookings to list.
type ListBookingsInput struct {
	UserID uuid.UUID
}

// --- Output DTOs ---

// BookingOutput wraps a single booking.
type BookingOutput struct {
	Booking *entity.Booking
}

// ListBookingsOutput wraps a user's booking history, oldest first.
type ListBookingsOutput struct {
	Bookings []*entity.Booking
}

// BookingUsecase defines the interface for the booking ledger.
type BookingUsecase interface {
	CreateBooking(ctx context.Context, input *CreateBookingInput) (*BookingOutput, error)
	ListBookings(ctx context.Context, input *ListBookingsInput) (*ListBookingsOutput, error)
}
