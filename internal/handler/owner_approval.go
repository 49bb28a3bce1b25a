package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/approval"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
)

// ApprovalHandler answers a hotel owner's "am I approved yet?" question.
type ApprovalHandler struct {
	Tracker *approval.Tracker
}

func NewApprovalHandler(t *approval.Tracker) *ApprovalHandler {
	return &ApprovalHandler{Tracker: t}
}

// Status returns the owner's tracked approval state.  The first call for an
// owner asks the backend and, while pending, adds the owner to the 30 s
// polling set; later calls are served from the tracker.
func (h *ApprovalHandler) Status(c echo.Context) error {
	st, err := h.Tracker.Status(c.Request().Context(), middleware.UserID(c), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	resp := echo.Map{
		"isApproved": st.Approved,
		"checkedAt":  st.CheckedAt,
	}
	if st.Approved {
		resp["redirect"] = "/hotel-owner/dashboard"
	}
	return c.JSON(http.StatusOK, resp)
}
