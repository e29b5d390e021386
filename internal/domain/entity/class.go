// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// DefaultCreditCost is applied when a class is created without an explicit cost.
const DefaultCreditCost = 1

// Class is a bookable session owned by exactly one studio.
type Class struct {
	ID         uuid.UUID // The unique identifier for the class.
	StudioID   uuid.UUID // The owning studio. Immutable after creation.
	Name       string    // Human-readable class name.
	StartsAt   time.Time // When the class takes place.
	SportType  string    // Optional sport category, empty when unset.
	CreditCost float64   // Positive booking cost in credits, defaults to 1.
	Capacity   *int      // Maximum concurrent bookings; nil means unbounded.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasCapacityLimit reports whether bookings for this class are bounded.
func (c *Class) HasCapacityLimit() bool {
	return c.Capacity != nil
}
