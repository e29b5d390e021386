package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "fitflex/internal/delivery/context"
	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"
	"fitflex/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// classService implements the ClassUsecase interface.
type classService struct {
	txManager   repository.TransactionManager
	classRepo   repository.ClassRepository
	bookingRepo repository.BookingRepository
	logger      *slog.Logger
}

// ClassServiceParams holds dependencies for classService, injected by Fx.
type ClassServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ClassRepo   repository.ClassRepository
	BookingRepo repository.BookingRepository
	Logger      *slog.Logger
}

// NewClassService is the constructor for classService.
func NewClassService(params ClassServiceParams) usecase.ClassUsecase {
	return &classService{
		txManager:   params.TxManager,
		classRepo:   params.ClassRepo,
		bookingRepo: params.BookingRepo,
		logger:      params.Logger,
	}
}

func (srv *classService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateClass publishes a new class under the studio's schedule.
func (srv *classService) CreateClass(ctx context.Context, input *usecase.CreateClassInput) (*usecase.ClassOutput, error) {
	srv.log(ctx).Info("Creating class", slog.Any("studioID", input.StudioID), slog.String("name", input.Name))

	class := &entity.Class{
		StudioID:   input.StudioID,
		Name:       strings.TrimSpace(input.Name),
		StartsAt:   input.StartsAt,
		SportType:  strings.TrimSpace(input.SportType),
		CreditCost: entity.DefaultCreditCost,
		Capacity:   input.Capacity,
	}
	if input.CreditCost != nil {
		class.CreditCost = *input.CreditCost
	}

	if err := srv.validateClass(class); err != nil {
		return nil, err
	}

	if err := srv.classRepo.Create(ctx, class); err != nil {
		srv.log(ctx).Error("Failed to create class", slog.Any("studioID", input.StudioID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create class")
	}

	srv.log(ctx).Debug("Class created", slog.Any("classID", class.ID))

	return &usecase.ClassOutput{Class: class}, nil
}

// UpdateClass applies a sparse patch to one of the studio's classes. Fields
// left nil in the input keep their stored values.
func (srv *classService) UpdateClass(ctx context.Context, input *usecase.UpdateClassInput) (*usecase.ClassOutput, error) {
	if !patchHasFields(input) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("update patch contains no recognized fields")
	}

	srv.log(ctx).Info("Updating class", slog.Any("studioID", input.StudioID), slog.Any("classID", input.ClassID))

	var updated *entity.Class
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		classRepo := repoFactory.ClassRepo()

		class, err := classRepo.FindByIDForUpdate(ctx, input.ClassID)
		if err != nil {
			if errors.Is(err, repository.ErrClassNotFound) {
				return errors.Wrap(domainerrors.ErrClassNotFound, "class does not exist")
			}

			return errors.Wrap(err, "failed to load class for update")
		}
		if class.StudioID != input.StudioID {
			return errors.Wrap(domainerrors.ErrForbidden, "class belongs to another studio")
		}

		applyClassPatch(class, input)
		if err := srv.validateClass(class); err != nil {
			return err
		}

		if err := classRepo.Update(ctx, class); err != nil {
			return errors.Wrap(err, "failed to save class")
		}
		updated = class

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute class update transaction", slog.Any("classID", input.ClassID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute class update transaction")
	}

	return &usecase.ClassOutput{Class: updated}, nil
}

// DeleteClass removes a class from the schedule. A class that already holds
// bookings cannot be deleted; the studio has promised those seats.
func (srv *classService) DeleteClass(ctx context.Context, input *usecase.DeleteClassInput) error {
	srv.log(ctx).Info("Deleting class", slog.Any("studioID", input.StudioID), slog.Any("classID", input.ClassID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		classRepo := repoFactory.ClassRepo()
		bookingRepo := repoFactory.BookingRepo()

		class, err := classRepo.FindByIDForUpdate(ctx, input.ClassID)
		if err != nil {
			if errors.Is(err, repository.ErrClassNotFound) {
				return errors.Wrap(domainerrors.ErrClassNotFound, "class does not exist")
			}

			return errors.Wrap(err, "failed to load class for deletion")
		}
		if class.StudioID != input.StudioID {
			return errors.Wrap(domainerrors.ErrForbidden, "class belongs to another studio")
		}

		booked, err := bookingRepo.ExistsByClassID(ctx, input.ClassID)
		if err != nil {
			return errors.Wrap(err, "failed to check class bookings")
		}
		if booked {
			return errors.Wrap(domainerrors.ErrClassHasBookings, "class has active bookings")
		}

		return classRepo.Delete(ctx, input.ClassID)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute class deletion transaction", slog.Any("classID", input.ClassID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute class deletion transaction")
	}

	srv.log(ctx).Debug("Class deleted", slog.Any("classID", input.ClassID))

	return nil
}

// ListClasses returns the public schedule ordered by start time.
func (srv *classService) ListClasses(ctx context.Context, input *usecase.ListClassesInput) (*usecase.ListClassesOutput, error) {
	classes, err := srv.classRepo.List(ctx, input.StudioID)
	if err != nil {
		srv.log(ctx).Error("Failed to list classes", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list classes")
	}

	return &usecase.ListClassesOutput{Classes: classes}, nil
}

func (srv *classService) validateClass(class *entity.Class) error {
	if class.Name == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("class name is required")
	}
	if class.StartsAt.IsZero() {
		return domainerrors.ErrValidationFailed.WrapMessage("class start time is required")
	}
	if class.CreditCost <= 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("credit cost must be positive")
	}
	if class.Capacity != nil && *class.Capacity < 0 {
		return domainerrors.ErrValidationFailed.WrapMessage("capacity cannot be negative")
	}

	return nil
}

func patchHasFields(input *usecase.UpdateClassInput) bool {
	return input.Name != nil ||
		input.StartsAt != nil ||
		input.SportType != nil ||
		input.CreditCost != nil ||
		input.Capacity != nil
}

func applyClassPatch(class *entity.Class, input *usecase.UpdateClassInput) {
	if input.Name != nil {
		class.Name = strings.TrimSpace(*input.Name)
	}
	if input.StartsAt != nil {
		class.StartsAt = *input.StartsAt
	}
	if input.SportType != nil {
		class.SportType = strings.TrimSpace(*input.SportType)
	}
	if input.CreditCost != nil {
		class.CreditCost = *input.CreditCost
	}
	if input.Capacity != nil {
		class.Capacity = input.Capacity
	}
}
