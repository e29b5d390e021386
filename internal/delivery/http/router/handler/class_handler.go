package handler

import (
	"log/slog"
	"net/http"
	"time"

	"fitflex/internal/delivery/http/middleware"
	"fitflex/internal/delivery/http/response"
	"fitflex/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ClassHandler holds dependencies for schedule management and the public listing.
type ClassHandler struct {
	uc     usecase.ClassUsecase
	logger *slog.Logger
}

// NewClassHandler is the constructor for ClassHandler, injected by Fx.
func NewClassHandler(uc usecase.ClassUsecase, logger *slog.Logger) *ClassHandler {
	return &ClassHandler{uc: uc, logger: logger}
}

type createClassRequest struct {
	Name       string    `json:"name" validate:"required,max=200"`
	StartsAt   time.Time `json:"datetime" validate:"required"`
	SportType  string    `json:"sport_type" validate:"max=100"`
	CreditCost *float64  `json:"credit_cost" validate:"omitempty,gt=0"`
	Capacity   *int      `json:"capacity" validate:"omitempty,gte=0"`
}

type updateClassRequest struct {
	Name       *string    `json:"name" validate:"omitempty,max=200"`
	StartsAt   *time.Time `json:"datetime"`
	SportType  *string    `json:"sport_type" validate:"omitempty,max=100"`
	CreditCost *float64   `json:"credit_cost" validate:"omitempty,gt=0"`
	Capacity   *int       `json:"capacity" validate:"omitempty,gte=0"`
}

// CreateClass handles the studio's request to publish a class.
func (h *ClassHandler) CreateClass(c echo.Context) error {
	studioID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid class input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateClass(c.Request().Context(), &usecase.CreateClassInput{
		StudioID:   studioID,
		Name:       req.Name,
		StartsAt:   req.StartsAt,
		SportType:  req.SportType,
		CreditCost: req.CreditCost,
		Capacity:   req.Capacity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Class, "Class created successfully")
}

// UpdateClass handles the studio's request to patch a class it owns.
func (h *ClassHandler) UpdateClass(c echo.Context) error {
	studioID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid class ID")
	}

	var req updateClassRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid class input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateClass(c.Request().Context(), &usecase.UpdateClassInput{
		StudioID:   studioID,
		ClassID:    classID,
		Name:       req.Name,
		StartsAt:   req.StartsAt,
		SportType:  req.SportType,
		CreditCost: req.CreditCost,
		Capacity:   req.Capacity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Class, "Class updated successfully")
}

// DeleteClass handles the studio's request to remove a class it owns.
func (h *ClassHandler) DeleteClass(c echo.Context) error {
	studioID, ok := middleware.AccountID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid account ID in token")
	}

	classID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid class ID")
	}

	err = h.uc.DeleteClass(c.Request().Context(), &usecase.DeleteClassInput{
		StudioID: studioID,
		ClassID:  classID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Class deleted successfully")
}

// ListClasses handles the public schedule listing, optionally filtered by studio.
func (h *ClassHandler) ListClasses(c echo.Context) error {
	input := &usecase.ListClassesInput{}
	if raw := c.QueryParam("studio_id"); raw != "" {
		studioID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid studio ID filter")
		}
		input.StudioID = &studioID
	}

	output, err := h.uc.ListClasses(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Classes, "Classes retrieved successfully")
}
