package usecase

import (
	"context"
	"time"

	"fitflex/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateClassInput defines the data required to publish a new class.
type CreateClassInput struct {
	StudioID   uuid.UUID
	Name       string
	StartsAt   time.Time
	SportType  string
	CreditCost *float64
	Capacity   *int
}

// UpdateClassInput carries a sparse patch for an existing class. Nil fields
// are left untouched.
type UpdateClassInput struct {
	StudioID   uuid.UUID
	ClassID    uuid.UUID
	Name       *string
	StartsAt   *time.Time
	SportType  *string
	CreditCost *float64
	Capacity   *int
}

// DeleteClassInput identifies the class a studio wants to remove.
type DeleteClassInput struct {
	StudioID uuid.UUID
	ClassID  uuid.UUID
}

// ListClassesInput filters the public class listing.
type ListClassesInput struct {
	StudioID *uuid.UUID
}

// --- Output DTOs ---

// ClassOutput wraps a single class.
type ClassOutput struct {
	Class *entity.Class
}

// ListClassesOutput wraps the ordered class listing.
type ListClassesOutput struct {
	Classes []*entity.Class
}

// ClassUsecase defines the interface for studio schedule management and the
// public class listing.
type ClassUsecase interface {
	CreateClass(ctx context.Context, input *CreateClassInput) (*ClassOutput, error)
	UpdateClass(ctx context.Context, input *UpdateClassInput) (*ClassOutput, error)
	DeleteClass(ctx context.Context, input *DeleteClassInput) error
	ListClasses(ctx context.Context, input *ListClassesInput) (*ListClassesOutput, error)
}
