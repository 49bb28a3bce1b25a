package apiclient

import (
	"context"
	"net/http"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// LoginRequest is the credential pair sent to /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest creates a customer or hotel-owner account.
type RegisterRequest struct {
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Role     model.Role `json:"role"`
	Phone    string     `json:"phone,omitempty"`
}

// OAuthRequest completes an external provider sign-in.
type OAuthRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Provider     string `json:"provider"`
	OAuthID      string `json:"oauthId"`
	ProfileImage string `json:"profileImage,omitempty"`
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (model.Session, error) {
	var s model.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", nil, req, &s)
	return s, err
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (model.Session, error) {
	var s model.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/register", "", nil, req, &s)
	return s, err
}

func (c *Client) CompleteOAuth(ctx context.Context, req OAuthRequest) (model.Session, error) {
	var s model.Session
	err := c.do(ctx, http.MethodPost, "/api/auth/oauth", "", nil, req, &s)
	return s, err
}

// Me returns the current profile for token.
func (c *Client) Me(ctx context.Context, token string) (model.User, error) {
	var u model.User
	err := c.do(ctx, http.MethodGet, "/api/auth/me", token, nil, nil, &u)
	return u, err
}
