package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/booking"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/review"
)

// CustomerHandler serves the customer's bookings, reviews and payments.
type CustomerHandler struct {
	API     *apiclient.Client
	Reviews *review.Checker
	Events  StatusEvents
	History HistoryStore
	Now     func() time.Time
}

func NewCustomerHandler(api *apiclient.Client, reviews *review.Checker, events StatusEvents, history HistoryStore) *CustomerHandler {
	return &CustomerHandler{API: api, Reviews: reviews, Events: events, History: history, Now: time.Now}
}

type createBookingReq struct {
	Hotel           string       `json:"hotel"`
	Room            string       `json:"room" validate:"required"`
	CheckIn         model.Date   `json:"checkIn"`
	CheckOut        model.Date   `json:"checkOut"`
	Guests          model.Guests `json:"guests"`
	SpecialRequests string       `json:"specialRequests" validate:"max=500"`
}

// customerBooking is a booking as listed to its customer.
type customerBooking struct {
	model.Booking
	Nights  int                `json:"nights"`
	Actions []booking.Action   `json:"actions"`
	Review  *model.Eligibility `json:"review,omitempty"`
}

func newCustomerBooking(b model.Booking, el *model.Eligibility) customerBooking {
	actions := booking.CustomerActions(b.Status)
	if el != nil && !review.CanSubmit(*el) {
		// Drop "review" when the booking cannot take one.
		kept := actions[:0]
		for _, a := range actions {
			if a.Name != "review" {
				kept = append(kept, a)
			}
		}
		actions = kept
	}
	if actions == nil {
		actions = []booking.Action{}
	}
	return customerBooking{
		Booking: b,
		Nights:  booking.Nights(b.CheckIn, b.CheckOut),
		Actions: actions,
		Review:  el,
	}
}

// CreateBooking validates the stay and books it.  Dates and party size are
// checked before any network call; capacity and price come from the room.
func (h *CustomerHandler) CreateBooking(c echo.Context) error {
	var req createBookingReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := booking.ValidateDates(req.CheckIn, req.CheckOut); err != nil {
		return respondError(c, err)
	}
	if err := booking.ValidateParty(req.Guests); err != nil {
		return respondError(c, err)
	}

	ctx := c.Request().Context()
	room, err := h.API.GetRoom(ctx, req.Room)
	if err != nil {
		return respondError(c, err)
	}
	stay := booking.Stay{CheckIn: req.CheckIn, CheckOut: req.CheckOut, Guests: req.Guests}
	quote, err := booking.QuoteStay(stay, room)
	if err != nil {
		return respondError(c, err)
	}

	hotelID := room.Hotel.ID()
	if hotelID == "" {
		hotelID = req.Hotel
	}
	b, err := h.API.CreateBooking(ctx, middleware.Token(c), apiclient.CreateBookingRequest{
		Hotel:           hotelID,
		Room:            room.ID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		Guests:          req.Guests,
		TotalAmount:     quote.TotalPrice,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"booking": newCustomerBooking(b, nil), "quote": quote})
}

// ListBookings returns the customer's bookings with the actions each one
// offers and, for checked-out stays, whether a review can be written.
func (h *CustomerHandler) ListBookings(c echo.Context) error {
	ctx := c.Request().Context()
	token := middleware.Token(c)
	list, err := h.API.MyBookings(ctx, token)
	if err != nil {
		return respondError(c, err)
	}
	eligibility := h.Reviews.Annotate(ctx, token, list)

	out := make([]customerBooking, 0, len(list))
	for _, b := range list {
		var el *model.Eligibility
		if v, ok := eligibility[b.ID]; ok {
			el = &v
		}
		out = append(out, newCustomerBooking(b, el))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// GetBooking returns one booking of the customer.
func (h *CustomerHandler) GetBooking(c echo.Context) error {
	ctx := c.Request().Context()
	token := middleware.Token(c)
	b, err := h.API.GetBooking(ctx, token, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	var el *model.Eligibility
	if b.Status == model.StatusCheckedOut {
		v := h.Reviews.Check(ctx, token, b)
		el = &v
	}
	return c.JSON(http.StatusOK, newCustomerBooking(b, el))
}

type cancelReq struct {
	Reason string `json:"reason" validate:"max=500"`
}

// CancelBooking cancels a pending or confirmed booking.  Any other state is
// refused with 409 before the backend is asked.
func (h *CustomerHandler) CancelBooking(c echo.Context) error {
	var req cancelReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	ctx := c.Request().Context()
	token := middleware.Token(c)

	current, err := h.API.GetBooking(ctx, token, c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if !booking.CanCustomerCancel(current.Status) {
		return respondError(c, &booking.TransitionError{From: current.Status, To: model.StatusCancelled})
	}

	b, err := h.API.CancelBooking(ctx, token, current.ID, req.Reason)
	if err != nil {
		return respondError(c, err)
	}
	if b.Status == "" {
		b.Status = model.StatusCancelled
	}
	if b.ID == "" {
		b.ID = current.ID
		b.Hotel = current.Hotel
	}
	publishStatusChange(h.Events, b, current.Status, middleware.User(c), req.Reason, h.Now())
	return c.JSON(http.StatusOK, newCustomerBooking(b, nil))
}

// BookingHistory returns the recorded status changes of one of the
// customer's bookings.
func (h *CustomerHandler) BookingHistory(c echo.Context) error {
	b, err := h.API.GetBooking(c.Request().Context(), middleware.Token(c), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return listHistory(c, h.History, b.ID)
}
