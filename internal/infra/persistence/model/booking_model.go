package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingModel mirrors the 'bookings' table. Rows are append-only; there is no
// cancellation flow, so the per-class count is the active booking count.
type BookingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	ClassID       uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentStatus string    `gorm:"type:varchar(20);not null"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (BookingModel) TableName() string {
	return "bookings"
}
