package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/handler"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// RegisterCustomer registers customer-scoped endpoints under /v1.  All routes
// require a session with the customer role.  Customers book stays, cancel
// them while pending or confirmed, keep favorites, review checked-out stays
// and pay.  The middleware is attached per route because /v1 is shared with
// the public group.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, f *handler.FavoritesHandler, jwtSecret string) {
	g := e.Group("/v1")
	mw := []echo.MiddlewareFunc{
		middleware.SessionAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer),
	}

	// ---- Bookings ----
	g.POST("/bookings", h.CreateBooking, mw...)
	g.GET("/bookings", h.ListBookings, mw...)
	g.GET("/bookings/:id", h.GetBooking, mw...)
	g.PUT("/bookings/:id/cancel", h.CancelBooking, mw...)
	g.GET("/bookings/:id/history", h.BookingHistory, mw...)

	// ---- Favorites ----
	g.GET("/favorites", f.List, mw...)
	g.POST("/favorites/:hotelId", f.Add, mw...)
	g.DELETE("/favorites/:hotelId", f.Remove, mw...)

	// ---- Reviews & payments ----
	g.POST("/reviews", h.CreateReview, mw...)
	g.POST("/payments/intent", h.CreatePaymentIntent, mw...)
	g.POST("/payments/confirm", h.ConfirmPayment, mw...)
}
