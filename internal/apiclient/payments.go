package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// PaymentIntent is what the browser needs to finish payment with the processor.
type PaymentIntent struct {
	ClientSecret    string  `json:"clientSecret"`
	PaymentIntentID string  `json:"paymentIntentId"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency,omitempty"`
}

func (c *Client) CreatePaymentIntent(ctx context.Context, token, bookingID string) (PaymentIntent, error) {
	var pi PaymentIntent
	body := map[string]string{"bookingId": bookingID}
	err := c.do(ctx, http.MethodPost, "/api/payments/create-intent", token, nil, body, &pi)
	return pi, err
}

func (c *Client) ConfirmPayment(ctx context.Context, token, bookingID, paymentIntentID string) (model.Booking, error) {
	var b model.Booking
	body := map[string]string{"bookingId": bookingID, "paymentIntentId": paymentIntentID}
	err := c.do(ctx, http.MethodPost, "/api/payments/confirm", token, nil, body, &b)
	return b, err
}
