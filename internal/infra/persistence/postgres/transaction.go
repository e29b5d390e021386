// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds one GORM transaction object and hands out repository instances
// bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction handle is also a *gorm.DB
}

// AccountRepo creates an account repository instance bound to the transaction.
func (f *gormRepositoryFactory) AccountRepo() repository.AccountRepository {
	return NewAccountRepository(f.tx)
}

// ResetTokenRepo creates a reset token repository instance bound to the transaction.
func (f *gormRepositoryFactory) ResetTokenRepo() repository.ResetTokenRepository {
	return NewResetTokenRepository(f.tx)
}

// ClassRepo creates a class repository instance bound to the transaction.
func (f *gormRepositoryFactory) ClassRepo() repository.ClassRepository {
	return NewClassRepository(f.tx)
}

// BookingRepo creates a booking repository instance bound to the transaction.
func (f *gormRepositoryFactory) BookingRepo() repository.BookingRepository {
	return NewBookingRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		if isStorageTimeout(tx.Error) {
			return domainerrors.ErrServiceUnavailable.WrapMessage("failed to begin transaction")
		}

		return domainerrors.ErrTransactionFailed.WrapMessage("failed to begin transaction")
	}

	// If a panic escapes the callback the transaction must still be rolled
	// back before the panic continues up the stack.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	err := fn(factory)
	if err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			// Keep the original business error; the rollback failure is secondary.
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		if isStorageTimeout(err) {
			return domainerrors.ErrServiceUnavailable.WrapMessage("failed to commit transaction")
		}

		return domainerrors.ErrTransactionFailed.WrapMessage("failed to commit transaction")
	}

	return nil
}
