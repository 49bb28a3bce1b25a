package apiclient

import (
	"context"
	"io"
	"net/http"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

func (c *Client) GetRoom(ctx context.Context, id string) (model.Room, error) {
	var r model.Room
	err := c.do(ctx, http.MethodGet, "/api/rooms/"+escape(id), "", nil, nil, &r)
	return r, err
}

// SaveRoom creates (id == "") or updates a room, forwarding the encoded body.
func (c *Client) SaveRoom(ctx context.Context, token, id, contentType string, body io.Reader) (model.Room, error) {
	method, path := http.MethodPost, "/api/rooms"
	if id != "" {
		method, path = http.MethodPut, "/api/rooms/"+escape(id)
	}
	var r model.Room
	err := c.Forward(ctx, method, path, token, contentType, body, &r)
	return r, err
}

func (c *Client) DeleteRoom(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/rooms/"+escape(id), token, nil, nil, nil)
}
