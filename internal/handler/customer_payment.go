package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
)

type paymentIntentReq struct {
	BookingID string `json:"bookingId" validate:"required"`
}

type paymentConfirmReq struct {
	BookingID       string `json:"bookingId" validate:"required"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// CreatePaymentIntent asks the backend to open a payment for a booking.  The
// card details never pass through the gateway.
func (h *CustomerHandler) CreatePaymentIntent(c echo.Context) error {
	var req paymentIntentReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	pi, err := h.API.CreatePaymentIntent(c.Request().Context(), middleware.Token(c), req.BookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, pi)
}

// ConfirmPayment reports a completed payment to the backend.
func (h *CustomerHandler) ConfirmPayment(c echo.Context) error {
	var req paymentConfirmReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	b, err := h.API.ConfirmPayment(c.Request().Context(), middleware.Token(c), req.BookingID, req.PaymentIntentID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newCustomerBooking(b, nil))
}
