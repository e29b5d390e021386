// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"fitflex/internal/delivery/http/middleware"
	"fitflex/internal/delivery/http/router/handler"
	"fitflex/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler       *handler.AccountHandler
	PasswordResetHandler *handler.PasswordResetHandler
	ClassHandler         *handler.ClassHandler
	BookingHandler       *handler.BookingHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler       *handler.AccountHandler
	passwordResetHandler *handler.PasswordResetHandler
	classHandler         *handler.ClassHandler
	bookingHandler       *handler.BookingHandler
	authMiddleware       *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:       params.AccountHandler,
		passwordResetHandler: params.PasswordResetHandler,
		classHandler:         params.ClassHandler,
		bookingHandler:       params.BookingHandler,
		authMiddleware:       params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Public class listing
	e.GET("/classes", r.classHandler.ListClasses)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register/user", r.accountHandler.RegisterUser)
		authGroup.POST("/register/studio", r.accountHandler.RegisterStudio)
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/password/forgot", r.passwordResetHandler.ForgotPassword)
		authGroup.POST("/password/reset", r.passwordResetHandler.ResetPassword)
	}

	// Studio routes that require authentication and the "studio" role
	studioGroup := e.Group("/studio")
	studioGroup.Use(r.authMiddleware.Authenticate)
	studioGroup.Use(r.authMiddleware.RequireRole(entity.AccountVariantStudio))
	{
		studioGroup.POST("/classes", r.classHandler.CreateClass)
		studioGroup.PATCH("/classes/:id", r.classHandler.UpdateClass)
		studioGroup.DELETE("/classes/:id", r.classHandler.DeleteClass)
	}

	// User routes that require authentication and the "user" role
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate)
	userGroup.Use(r.authMiddleware.RequireRole(entity.AccountVariantUser))
	{
		userGroup.POST("/bookings", r.bookingHandler.CreateBooking)
		userGroup.GET("/bookings", r.bookingHandler.ListBookings)
	}
}
