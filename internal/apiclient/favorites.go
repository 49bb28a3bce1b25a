package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// Favorites returns the customer's favorite hotels.
func (c *Client) Favorites(ctx context.Context, token string) ([]model.Hotel, error) {
	var out []model.Hotel
	err := c.do(ctx, http.MethodGet, "/api/customers/favorites", token, nil, nil, &out)
	return out, err
}

func (c *Client) AddToFavorites(ctx context.Context, token, hotelID string) error {
	return c.do(ctx, http.MethodPost, "/api/customers/favorites/"+escape(hotelID), token, nil, nil, nil)
}

func (c *Client) RemoveFromFavorites(ctx context.Context, token, hotelID string) error {
	return c.do(ctx, http.MethodDelete, "/api/customers/favorites/"+escape(hotelID), token, nil, nil, nil)
}
