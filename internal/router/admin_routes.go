package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/handler"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// RegisterAdmin registers the approval queues and platform statistics under
// /v1/admin for sessions with the admin role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1/admin",
		middleware.SessionAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	)
	g.GET("/stats", h.Stats)

	g.GET("/owners/pending", h.PendingOwners)
	g.PUT("/owners/:id/approve", h.ApproveOwner)
	g.PUT("/owners/:id/reject", h.RejectOwner)

	g.GET("/hotels/pending", h.PendingHotels)
	g.PUT("/hotels/:id/approve", h.ApproveHotel)
	g.PUT("/hotels/:id/reject", h.RejectHotel)
}
