package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
)

// AdminHandler serves the admin approval queues and platform statistics.
type AdminHandler struct {
	API   *apiclient.Client
	Purge func(ctx context.Context)
}

func NewAdminHandler(api *apiclient.Client, purge func(context.Context)) *AdminHandler {
	if purge == nil {
		purge = func(context.Context) {}
	}
	return &AdminHandler{API: api, Purge: purge}
}

type decisionReq struct {
	Reason string `json:"reason" validate:"max=500"`
}

// Stats returns the platform summary.
func (h *AdminHandler) Stats(c echo.Context) error {
	s, err := h.API.AdminStats(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

// PendingOwners lists hotel owners waiting for a decision.
func (h *AdminHandler) PendingOwners(c echo.Context) error {
	owners, err := h.API.PendingOwners(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": owners, "count": len(owners)})
}

// PendingHotels lists hotels waiting for a decision.
func (h *AdminHandler) PendingHotels(c echo.Context) error {
	hotels, err := h.API.PendingHotels(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": hotels, "count": len(hotels)})
}

func (h *AdminHandler) ApproveOwner(c echo.Context) error { return h.decideOwner(c, apiclient.Approve) }
func (h *AdminHandler) RejectOwner(c echo.Context) error  { return h.decideOwner(c, apiclient.Reject) }
func (h *AdminHandler) ApproveHotel(c echo.Context) error { return h.decideHotel(c, apiclient.Approve) }
func (h *AdminHandler) RejectHotel(c echo.Context) error  { return h.decideHotel(c, apiclient.Reject) }

// decideOwner records the verdict.  The owner's own session learns about it
// on the next approval poll.
func (h *AdminHandler) decideOwner(c echo.Context, d apiclient.Decision) error {
	var req decisionReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := h.API.DecideOwner(c.Request().Context(), middleware.Token(c), c.Param("id"), d, req.Reason); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": decisionMessage("Hotel owner", d)})
}

// decideHotel records the verdict and drops cached listings, since an
// approved hotel becomes public.
func (h *AdminHandler) decideHotel(c echo.Context, d apiclient.Decision) error {
	var req decisionReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	if err := h.API.DecideHotel(ctx, middleware.Token(c), c.Param("id"), d, req.Reason); err != nil {
		return respondError(c, err)
	}
	h.Purge(ctx)
	return c.JSON(http.StatusOK, echo.Map{"message": decisionMessage("Hotel", d)})
}

func decisionMessage(subject string, d apiclient.Decision) string {
	if d == apiclient.Approve {
		return subject + " approved"
	}
	return subject + " rejected"
}
