package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// CreateBookingRequest is a validated stay submitted for one room.
type CreateBookingRequest struct {
	Hotel           string       `json:"hotel"`
	Room            string       `json:"room"`
	CheckIn         model.Date   `json:"checkIn"`
	CheckOut        model.Date   `json:"checkOut"`
	Guests          model.Guests `json:"guests"`
	TotalAmount     float64      `json:"totalAmount"`
	SpecialRequests string       `json:"specialRequests,omitempty"`
}

func (c *Client) CreateBooking(ctx context.Context, token string, req CreateBookingRequest) (model.Booking, error) {
	var b model.Booking
	err := c.do(ctx, http.MethodPost, "/api/bookings", token, nil, req, &b)
	return b, err
}

// MyBookings lists the customer's bookings.
func (c *Client) MyBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var out []model.Booking
	err := c.do(ctx, http.MethodGet, "/api/bookings/my-bookings", token, nil, nil, &out)
	return out, err
}

// OwnerBookings lists bookings across the hotel owner's properties.
func (c *Client) OwnerBookings(ctx context.Context, token string) ([]model.Booking, error) {
	var out []model.Booking
	err := c.do(ctx, http.MethodGet, "/api/bookings/hotel-owner", token, nil, nil, &out)
	return out, err
}

func (c *Client) GetBooking(ctx context.Context, token, id string) (model.Booking, error) {
	var b model.Booking
	err := c.do(ctx, http.MethodGet, "/api/bookings/"+escape(id), token, nil, nil, &b)
	return b, err
}

// CancelBooking is the customer-driven cancellation.
func (c *Client) CancelBooking(ctx context.Context, token, id, reason string) (model.Booking, error) {
	var b model.Booking
	body := map[string]string{"reason": reason}
	err := c.do(ctx, http.MethodPut, "/api/bookings/"+escape(id)+"/cancel", token, nil, body, &b)
	return b, err
}

// UpdateBookingStatus is the owner-driven transition.
func (c *Client) UpdateBookingStatus(ctx context.Context, token, id string, status model.BookingStatus, reason string) (model.Booking, error) {
	var b model.Booking
	body := struct {
		Status model.BookingStatus `json:"status"`
		Reason string              `json:"cancellationReason,omitempty"`
	}{status, reason}
	err := c.do(ctx, http.MethodPut, "/api/bookings/"+escape(id)+"/status", token, nil, body, &b)
	return b, err
}
