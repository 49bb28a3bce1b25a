package middleware

// identity.go defines accessors for the identity SessionAuth stores in the
// Echo context.  Handlers use them instead of reading context keys directly.

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c echo.Context) string {
	s, _ := c.Get(ctxUserID).(string)
	return s
}

// Role returns the authenticated user's role.
func Role(c echo.Context) model.Role {
	s, _ := c.Get(ctxRole).(string)
	return model.Role(s)
}

// Token returns the backend access token of the request.
func Token(c echo.Context) string {
	s, _ := c.Get(ctxToken).(string)
	return s
}

// User returns the profile snapshot of the caller.  Only ID and Role are
// guaranteed to be set.
func User(c echo.Context) model.User {
	u, _ := c.Get(ctxUser).(model.User)
	return u
}

// ClientKey identifies the caller for per-client state such as the search
// debouncer: the user id when signed in, the client IP otherwise.
func ClientKey(c echo.Context) string {
	if id := UserID(c); id != "" {
		return "user:" + id
	}
	ip := c.RealIP()
	if ip == "" {
		ip = "unknown"
	}
	return "ip:" + ip
}

// userID is the identity used in rate limit keys; "anon" when nobody is
// signed in.
func userID(c echo.Context) string {
	if id := UserID(c); id != "" {
		return id
	}
	return "anon"
}
