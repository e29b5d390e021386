package impl

import (
	"context"
	"log/slog"

	deliverycontext "fitflex/internal/delivery/context"
	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/domain/repository"
	"fitflex/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// bookingService implements the BookingUsecase interface.
type bookingService struct {
	txManager   repository.TransactionManager
	bookingRepo repository.BookingRepository
	logger      *slog.Logger
}

// BookingServiceParams holds dependencies for bookingService, injected by Fx.
type BookingServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	BookingRepo repository.BookingRepository
	Logger      *slog.Logger
}

// NewBookingService is the constructor for bookingService.
func NewBookingService(params BookingServiceParams) usecase.BookingUsecase {
	return &bookingService{
		txManager:   params.TxManager,
		bookingRepo: params.BookingRepo,
		logger:      params.Logger,
	}
}

func (srv *bookingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateBooking books a seat in a class. Lock, count and insert run in one
// transaction: the row lock on the class serializes concurrent attempts, so
// a class with capacity n never ends up with more than n bookings no matter
// how many requests race for the last seat.
func (srv *bookingService) CreateBooking(ctx context.Context, input *usecase.CreateBookingInput) (*usecase.BookingOutput, error) {
	srv.log(ctx).Info("Creating booking", slog.Any("userID", input.UserID), slog.Any("classID", input.ClassID))

	booking := &entity.Booking{
		UserID:        input.UserID,
		ClassID:       input.ClassID,
		PaymentStatus: entity.PaymentStatusPaid,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		classRepo := repoFactory.ClassRepo()
		bookingRepo := repoFactory.BookingRepo()

		class, err := classRepo.FindByIDForUpdate(ctx, input.ClassID)
		if err != nil {
			if errors.Is(err, repository.ErrClassNotFound) {
				return errors.Wrap(domainerrors.ErrClassNotFound, "class does not exist")
			}

			return errors.Wrap(err, "failed to lock class for booking")
		}

		if class.HasCapacityLimit() {
			held, err := bookingRepo.CountByClassID(ctx, input.ClassID)
			if err != nil {
				return errors.Wrap(err, "failed to count class bookings")
			}
			if held >= int64(*class.Capacity) {
				return errors.Wrap(domainerrors.ErrCapacityExceeded, "class is fully booked")
			}
		}

		return bookingRepo.Create(ctx, booking)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute booking transaction", slog.Any("userID", input.UserID), slog.Any("classID", input.ClassID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute booking transaction")
	}

	srv.log(ctx).Debug("Booking created", slog.Any("bookingID", booking.ID))

	return &usecase.BookingOutput{Booking: booking}, nil
}

// ListBookings returns the user's booking history, oldest first.
func (srv *bookingService) ListBookings(ctx context.Context, input *usecase.ListBookingsInput) (*usecase.ListBookingsOutput, error) {
	bookings, err := srv.bookingRepo.ListByUserID(ctx, input.UserID)
	if err != nil {
		srv.log(ctx).Error("Failed to list bookings", slog.Any("userID", input.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to list bookings")
	}

	return &usecase.ListBookingsOutput{Bookings: bookings}, nil
}
