package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"errors"
	"log"
	"net/http" // http package defines standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/approval"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// RequireRole returns a middleware function that enforces that the
// authenticated user has one of the specified roles.  Roles are mutually
// exclusive, so a customer can never reach an owner or admin route.  It
// assumes SessionAuth ran first.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[model.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allowed[Role(c)] {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}

// ApprovalLookup answers whether a hotel owner has been approved.
type ApprovalLookup interface {
	Status(ctx context.Context, userID, token string) (approval.State, error)
}

// RequireApprovedOwner lets through only hotel owners an admin approved.
// Pending owners get 403 and are expected to poll the approval status
// endpoint instead.
func RequireApprovedOwner(lookup ApprovalLookup) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Role(c) != model.RoleHotelOwner {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			st, err := lookup.Status(c.Request().Context(), UserID(c), Token(c))
			if err != nil {
				log.Printf("approval: status for %s: %v", UserID(c), err)
				status := http.StatusBadGateway
				var ae *apiclient.APIError
				if errors.As(err, &ae) {
					status = ae.Status
				}
				return c.JSON(status, echo.Map{"error": apiclient.MessageOf(err)})
			}
			if !st.Approved {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "account pending approval", "isApproved": false})
			}
			return next(c)
		}
	}
}
