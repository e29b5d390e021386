// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PaymentStatusPaid is the only payment status produced in this system.
// Real settlement is out of scope; bookings are recorded as already paid.
const PaymentStatusPaid = "paid"

// Booking is a user's reserved seat in a class. Bookings are immutable once
// created; there is no cancellation flow.
type Booking struct {
	ID            uuid.UUID // The unique identifier for the booking.
	UserID        uuid.UUID // The booking user.
	ClassID       uuid.UUID // The booked class.
	PaymentStatus string    // Always "paid" in this system.
	CreatedAt     time.Time // Creation time; listings are ordered by it.
}
