package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/booking"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// ownerBooking is a booking as listed to the hotel owner, with the status
// changes the owner may apply next.
type ownerBooking struct {
	model.Booking
	Nights  int              `json:"nights"`
	Actions []booking.Action `json:"actions"`
}

func newOwnerBooking(b model.Booking) ownerBooking {
	return ownerBooking{
		Booking: b,
		Nights:  booking.Nights(b.CheckIn, b.CheckOut),
		Actions: booking.OwnerActions(b.Status),
	}
}

// ListBookings returns bookings across the owner's hotels.  ?status= and
// ?hotel= narrow the list.
func (h *OwnerHandler) ListBookings(c echo.Context) error {
	var want model.BookingStatus
	if s := c.QueryParam("status"); s != "" {
		st, err := booking.ParseStatus(s)
		if err != nil {
			return respondError(c, err)
		}
		want = st
	}
	hotel := c.QueryParam("hotel")

	list, err := h.API.OwnerBookings(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]ownerBooking, 0, len(list))
	for _, b := range list {
		if want != "" && b.Status != want {
			continue
		}
		if hotel != "" && b.Hotel.ID() != hotel {
			continue
		}
		out = append(out, newOwnerBooking(b))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

type statusReq struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason" validate:"max=500"`
}

// UpdateBookingStatus moves a booking along its lifecycle.  The current
// status is read first and a move outside the allow-list is refused with
// 409 without calling the backend update.  Nothing is retried.
func (h *OwnerHandler) UpdateBookingStatus(c echo.Context) error {
	var req statusReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	target, err := booking.ParseStatus(req.Status)
	if err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	token := middleware.Token(c)
	current, err := h.API.GetBooking(ctx, token, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if err := booking.Transition(current.Status, target); err != nil {
		return respondError(c, err)
	}

	b, err := h.API.UpdateBookingStatus(ctx, token, current.ID, target, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	// An empty reply means the backend accepted the change without echoing
	// the booking; a reply with a status is reported as is.
	if b.ID == "" {
		b = current
		b.Status = ""
	}
	if b.Status == "" {
		b.Status = target
	}
	if b.Status != current.Status {
		publishStatusChange(h.Events, b, current.Status, middleware.User(c), req.Reason, h.Now())
	}
	return c.JSON(http.StatusOK, newOwnerBooking(b))
}

// BookingHistory returns the recorded status changes of a booking at one of
// the owner's hotels.
func (h *OwnerHandler) BookingHistory(c echo.Context) error {
	b, err := h.API.GetBooking(c.Request().Context(), middleware.Token(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return listHistory(c, h.History, b.ID)
}
