package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// HotelQuery filters the public hotel listing.
type HotelQuery struct {
	Location string
	Category string
	Page     int
	Limit    int
}

// Values encodes q as query parameters, omitting zero fields.
func (q HotelQuery) Values() url.Values {
	v := url.Values{}
	if q.Location != "" {
		v.Set("location", q.Location)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

func (c *Client) ListHotels(ctx context.Context, q HotelQuery) (model.HotelPage, error) {
	var page model.HotelPage
	err := c.do(ctx, http.MethodGet, "/api/hotels", "", q.Values(), nil, &page)
	return page, err
}

func (c *Client) GetHotel(ctx context.Context, id string) (model.Hotel, error) {
	var h model.Hotel
	err := c.do(ctx, http.MethodGet, "/api/hotels/"+escape(id), "", nil, nil, &h)
	return h, err
}

func (c *Client) HotelRooms(ctx context.Context, hotelID string) ([]model.Room, error) {
	var rooms []model.Room
	err := c.do(ctx, http.MethodGet, "/api/hotels/"+escape(hotelID)+"/rooms", "", nil, nil, &rooms)
	return rooms, err
}

// MyHotels lists the properties of the hotel owner behind token.
func (c *Client) MyHotels(ctx context.Context, token string) ([]model.Hotel, error) {
	var hotels []model.Hotel
	err := c.do(ctx, http.MethodGet, "/api/hotels/owner/my-hotels", token, nil, nil, &hotels)
	return hotels, err
}

// SaveHotel creates (id == "") or updates a hotel.  body is the encoded form
// (JSON or multipart with images) and contentType its media type.
func (c *Client) SaveHotel(ctx context.Context, token, id, contentType string, body io.Reader) (model.Hotel, error) {
	method, path := http.MethodPost, "/api/hotels"
	if id != "" {
		method, path = http.MethodPut, "/api/hotels/"+escape(id)
	}
	var h model.Hotel
	err := c.Forward(ctx, method, path, token, contentType, body, &h)
	return h, err
}

func (c *Client) DeleteHotel(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/hotels/"+escape(id), token, nil, nil, nil)
}
