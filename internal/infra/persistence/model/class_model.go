package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassModel mirrors the 'classes' table.
type ClassModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	StudioID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name       string    `gorm:"type:varchar(100);not null"`
	StartsAt   time.Time `gorm:"column:datetime;not null"`
	SportType  *string   `gorm:"type:varchar(50)"`
	CreditCost float64   `gorm:"not null;default:1"`
	Capacity   *int      // NULL means unbounded
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Bookings []BookingModel `gorm:"foreignKey:ClassID"`
}

// TableName explicitly sets the table name for GORM.
func (ClassModel) TableName() string {
	return "classes"
}
