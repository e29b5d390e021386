// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"fitflex/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrClassNotFound is returned when the referenced class does not exist.
var ErrClassNotFound = errors.New("class not found")

// ClassRepository persists the studio-owned class catalog.
type ClassRepository interface {
	// Create persists a new class.
	Create(ctx context.Context, class *entity.Class) error

	// FindByID retrieves a single class by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Class, error)

	// FindByIDForUpdate retrieves a class under a row-level lock. Only
	// meaningful inside a transaction; the lock is held until commit/rollback
	// so capacity checks against the class stay serialized.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Class, error)

	// Update persists a modified class.
	Update(ctx context.Context, class *entity.Class) error

	// Delete removes a class. Returns ErrClassNotFound when absent.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns classes ordered by start time, optionally filtered by the
	// owning studio. A fresh query on every call.
	List(ctx context.Context, studioID *uuid.UUID) ([]*entity.Class, error)
}
