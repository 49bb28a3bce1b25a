package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// AdminStats is the platform summary shown on the admin dashboard.
type AdminStats struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalHotels   int     `json:"totalHotels"`
	TotalBookings int     `json:"totalBookings"`
	PendingOwners int     `json:"pendingOwners"`
	PendingHotels int     `json:"pendingHotels"`
	TotalRevenue  float64 `json:"totalRevenue"`
}

func (c *Client) AdminStats(ctx context.Context, token string) (AdminStats, error) {
	var s AdminStats
	err := c.do(ctx, http.MethodGet, "/api/admin/stats", token, nil, nil, &s)
	return s, err
}

func (c *Client) PendingOwners(ctx context.Context, token string) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, http.MethodGet, "/api/admin/hotel-owners/pending", token, nil, nil, &out)
	return out, err
}

func (c *Client) PendingHotels(ctx context.Context, token string) ([]model.Hotel, error) {
	var out []model.Hotel
	err := c.do(ctx, http.MethodGet, "/api/admin/hotels/pending", token, nil, nil, &out)
	return out, err
}

// Decision is an admin verdict on a pending owner or hotel.
type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

// DecideOwner approves or rejects a pending hotel owner.
func (c *Client) DecideOwner(ctx context.Context, token, id string, d Decision, reason string) error {
	return c.decide(ctx, token, "/api/admin/hotel-owners/"+escape(id)+"/"+string(d), reason)
}

// DecideHotel approves or rejects a pending hotel.
func (c *Client) DecideHotel(ctx context.Context, token, id string, d Decision, reason string) error {
	return c.decide(ctx, token, "/api/admin/hotels/"+escape(id)+"/"+string(d), reason)
}

func (c *Client) decide(ctx context.Context, token, path, reason string) error {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return c.do(ctx, http.MethodPut, path, token, nil, body, nil)
}
