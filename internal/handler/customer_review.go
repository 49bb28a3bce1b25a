package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/review"
)

type reviewReq struct {
	Booking string `json:"booking" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// CreateReview posts a review for a checked-out booking.  A booking that
// already has a review, or is not eligible, is refused with 409.
func (h *CustomerHandler) CreateReview(c echo.Context) error {
	var req reviewReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	token := middleware.Token(c)

	el, err := h.API.ReviewEligibility(ctx, token, req.Booking)
	if err != nil {
		return respondError(c, err)
	}
	if el.HasReview {
		return c.JSON(http.StatusConflict, echo.Map{"error": "You have already reviewed this stay.", "hasReview": true})
	}
	if !review.CanSubmit(el) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Reviews can be written only after check-out.", "eligible": false})
	}

	rv, err := h.API.CreateReview(ctx, token, apiclient.ReviewRequest{
		Booking: req.Booking,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, rv)
}
