package router // router defines how HTTP routes are registered for the gateway

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/handler"    // owner handlers
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware" // session + role middlewares
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// RegisterOwner registers hotel-owner endpoints under /v1/owner.  All routes
// require a session with the hotel_owner role; everything except the
// approval status additionally requires an admin-approved account.
func RegisterOwner(e *echo.Echo, o *handler.OwnerHandler, a *handler.ApprovalHandler, approvals middleware.ApprovalLookup, jwtSecret string) {
	g := e.Group(
		"/v1/owner",
		middleware.SessionAuth(jwtSecret),
		middleware.RequireRole(model.RoleHotelOwner),
	)

	// Pending owners poll this until an admin decides.
	g.GET("/approval-status", a.Status)

	approved := middleware.RequireApprovedOwner(approvals)

	g.GET("/dashboard", o.Dashboard, approved)

	// ---- Hotels ----
	g.GET("/hotels", o.MyHotels, approved)
	g.POST("/hotels", o.CreateHotel, approved)
	g.PUT("/hotels/:id", o.UpdateHotel, approved)
	g.DELETE("/hotels/:id", o.DeleteHotel, approved)

	// ---- Rooms ----
	g.POST("/rooms", o.CreateRoom, approved)
	g.PUT("/rooms/:id", o.UpdateRoom, approved)
	g.DELETE("/rooms/:id", o.DeleteRoom, approved)

	// ---- Bookings ----
	g.GET("/bookings", o.ListBookings, approved)
	g.PUT("/bookings/:id/status", o.UpdateBookingStatus, approved)
	g.GET("/bookings/:id/history", o.BookingHistory, approved)
}
