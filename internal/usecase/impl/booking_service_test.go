package impl

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fitflex/internal/domain/entity"
	domainerrors "fitflex/internal/domain/errors"
	"fitflex/internal/errors"
	"fitflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingContextKey string

const bookingIndexKey bookingContextKey = "booking-index"

func newTestBookingService(t *testing.T) (usecase.BookingUsecase, *memClassRepo, *memBookingRepo) {
	t.Helper()

	txManager := newMemTxManager()
	classRepo := newMemClassRepo(txManager)
	bookingRepo := newMemBookingRepo()
	txManager.factory = &memRepoFactory{classRepo: classRepo, bookingRepo: bookingRepo}

	service := NewBookingService(BookingServiceParams{
		TxManager:   txManager,
		BookingRepo: bookingRepo,
		Logger:      newDiscardLogger(),
	})

	return service, classRepo, bookingRepo
}

func seedClass(t *testing.T, classRepo *memClassRepo, capacity *int) *entity.Class {
	t.Helper()

	class := &entity.Class{
		StudioID:   uuid.New(),
		Name:       "Morning Yoga",
		StartsAt:   time.Now().Add(time.Hour),
		CreditCost: entity.DefaultCreditCost,
		Capacity:   capacity,
	}
	require.NoError(t, classRepo.Create(context.Background(), class))

	return class
}

func TestBookingService_CreateBooking(t *testing.T) {
	uc, classRepo, _ := newTestBookingService(t)
	class := seedClass(t, classRepo, nil)
	userID := uuid.New()

	out, err := uc.CreateBooking(context.Background(), &usecase.CreateBookingInput{
		UserID:  userID,
		ClassID: class.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, userID, out.Booking.UserID)
	assert.Equal(t, class.ID, out.Booking.ClassID)
	assert.Equal(t, entity.PaymentStatusPaid, out.Booking.PaymentStatus)
	assert.NotEqual(t, uuid.Nil, out.Booking.ID)
}

func TestBookingService_CreateBooking_UnknownClass(t *testing.T) {
	uc, _, _ := newTestBookingService(t)

	out, err := uc.CreateBooking(context.Background(), &usecase.CreateBookingInput{
		UserID:  uuid.New(),
		ClassID: uuid.New(),
	})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrClassNotFound))
}

func TestBookingService_CreateBooking_UnlimitedCapacity(t *testing.T) {
	uc, classRepo, _ := newTestBookingService(t)
	class := seedClass(t, classRepo, nil)
	ctx := context.Background()

	// No capacity limit means bookings never run out of seats.
	for i := 0; i < 20; i++ {
		_, err := uc.CreateBooking(ctx, &usecase.CreateBookingInput{UserID: uuid.New(), ClassID: class.ID})
		require.NoError(t, err)
	}
}

func TestBookingService_CreateBooking_CapacityExceeded(t *testing.T) {
	uc, classRepo, _ := newTestBookingService(t)
	class := seedClass(t, classRepo, intPtr(2))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := uc.CreateBooking(ctx, &usecase.CreateBookingInput{UserID: uuid.New(), ClassID: class.ID})
		require.NoError(t, err)
	}

	out, err := uc.CreateBooking(ctx, &usecase.CreateBookingInput{UserID: uuid.New(), ClassID: class.ID})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrCapacityExceeded))
}

func TestBookingService_CreateBooking_ZeroCapacity(t *testing.T) {
	uc, classRepo, _ := newTestBookingService(t)
	class := seedClass(t, classRepo, intPtr(0))

	// Capacity zero is a valid class that never admits a booking.
	out, err := uc.CreateBooking(context.Background(), &usecase.CreateBookingInput{UserID: uuid.New(), ClassID: class.ID})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, errors.Is(err, domainerrors.ErrCapacityExceeded))
}

func TestBookingService_CreateBooking_ConcurrentLastSeat(t *testing.T) {
	const attempts = 8

	uc, classRepo, bookingRepo := newTestBookingService(t)
	class := seedClass(t, classRepo, intPtr(1))
	ctx := context.Background()

	var wg sync.WaitGroup
	var successCount, fullCount, otherCount atomic.Int64

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			bookingCtx := context.WithValue(ctx, bookingIndexKey, i)
			_, err := uc.CreateBooking(bookingCtx, &usecase.CreateBookingInput{
				UserID:  uuid.New(),
				ClassID: class.ID,
			})
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, domainerrors.ErrCapacityExceeded):
				fullCount.Add(1)
			default:
				otherCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	// The row lock admits exactly one booking through the last seat.
	assert.Equal(t, int64(1), successCount.Load())
	assert.Equal(t, int64(attempts-1), fullCount.Load())
	assert.Equal(t, int64(0), otherCount.Load())
	assert.Equal(t, int64(attempts), classRepo.lockCalls.Load())

	held, err := bookingRepo.CountByClassID(ctx, class.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), held)
}

func TestBookingService_ListBookings(t *testing.T) {
	uc, classRepo, _ := newTestBookingService(t)
	first := seedClass(t, classRepo, nil)
	second := seedClass(t, classRepo, nil)
	userID := uuid.New()
	ctx := context.Background()

	_, err := uc.CreateBooking(ctx, &usecase.CreateBookingInput{UserID: userID, ClassID: first.ID})
	require.NoError(t, err)
	_, err = uc.CreateBooking(ctx, &usecase.CreateBookingInput{UserID: uuid.New(), ClassID: first.ID})
	require.NoError(t, err)
	_, err = uc.CreateBooking(ctx, &usecase.CreateBookingInput{UserID: userID, ClassID: second.ID})
	require.NoError(t, err)

	out, err := uc.ListBookings(ctx, &usecase.ListBookingsInput{UserID: userID})
	require.NoError(t, err)
	require.Len(t, out.Bookings, 2)
	// Oldest booking first.
	assert.Equal(t, first.ID, out.Bookings[0].ClassID)
	assert.Equal(t, second.ID, out.Bookings[1].ClassID)
	for _, booking := range out.Bookings {
		assert.Equal(t, userID, booking.UserID)
	}
}

func TestBookingService_ListBookings_Empty(t *testing.T) {
	uc, _, _ := newTestBookingService(t)

	out, err := uc.ListBookings(context.Background(), &usecase.ListBookingsInput{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, out.Bookings)
}
