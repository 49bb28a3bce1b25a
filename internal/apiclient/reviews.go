package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// ReviewRequest submits a review for a completed booking.
type ReviewRequest struct {
	Booking string `json:"booking"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment,omitempty"`
}

func (c *Client) ReviewEligibility(ctx context.Context, token, bookingID string) (model.Eligibility, error) {
	var e model.Eligibility
	err := c.do(ctx, http.MethodGet, "/api/reviews/eligibility/"+escape(bookingID), token, nil, nil, &e)
	return e, err
}

func (c *Client) CreateReview(ctx context.Context, token string, req ReviewRequest) (model.Review, error) {
	var r model.Review
	err := c.do(ctx, http.MethodPost, "/api/reviews", token, nil, req, &r)
	return r, err
}

func (c *Client) HotelReviews(ctx context.Context, hotelID string) ([]model.Review, error) {
	var out []model.Review
	err := c.do(ctx, http.MethodGet, "/api/reviews/hotel/"+escape(hotelID), "", nil, nil, &out)
	return out, err
}
