package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Name and email carry unique constraints so concurrent registrations cannot
// both insert; email is stored in its lower-cased form.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(100);unique;not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Bookings    []BookingModel            `gorm:"foreignKey:UserID"`
	ResetTokens []PasswordResetTokenModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}

// StudioModel mirrors the 'studios' table. Studios are a disjoint identity
// space from users: uniqueness of name/email holds per table, not globally.
type StudioModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Name         string    `gorm:"type:varchar(100);unique;not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Location     *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Classes []ClassModel `gorm:"foreignKey:StudioID"`
}

// TableName explicitly sets the table name for GORM.
func (StudioModel) TableName() string {
	return "studios"
}
