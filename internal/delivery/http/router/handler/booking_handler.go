package handler

import (
	"log/slog"
	"net/http"

	"fitflex/internal/delivery/http/middleware"
	"fitflex/internal/delivery/http/response"
	"fitflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BookingHandler holds dependencies for the booking endpoints.
type BookingHandler struct {
	uc     usecase.BookingUsecase
	logger *slog.Logger
}

// NewBookingHandler is the constructor for BookingHandler, injected by Fx.
func NewBookingHandler(uc usecase.BookingUsecase, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{uc: uc, logger: logger}
}

type createBookingRequest struct {
	ClassID uuid.UUID `json:"class_id" validate:"required"`
}

// CreateBooking handles the user's request to book a class seat.
func (h *BookingHandler) CreateBooking(c echo.Context) error {
	userID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid booking input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateBooking(c.Request().Context(), &usecase.CreateBookingInput{
		UserID:  userID,
		ClassID: req.ClassID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Booking, "Booking created successfully")
}

// ListBookings handles the user's request to list their own bookings.
func (h *BookingHandler) ListBookings(c echo.Context) error {
	userID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	output, err := h.uc.ListBookings(c.Request().Context(), &usecase.ListBookingsInput{UserID: userID})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Bookings, "Bookings retrieved successfully")
}
