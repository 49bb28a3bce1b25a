package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming
	"time"

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/session"
	"github.com/iliyamo/hotel-booking-gateway/internal/utils"
)

// Context keys set by SessionAuth.
const (
	ctxUserID = "user_id"
	ctxRole   = "role"
	ctxToken  = "token"
	ctxUser   = "user"
)

// SessionAuth returns an Echo middleware that requires a backend access token
// and injects the caller's identity into the request context.  The token is
// read from the session cookie first and from an "Authorization: Bearer"
// header second, so browsers and API callers share the same routes.  When
// secret is set the token signature is verified; otherwise the claims are
// only decoded and the backend remains the judge of the token.
func SessionAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authenticate(c, secret) {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			return next(c)
		}
	}
}

// OptionalSession behaves like SessionAuth but lets anonymous requests
// through.  Handlers on public routes use it to personalise responses.
func OptionalSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authenticate(c, secret)
			return next(c)
		}
	}
}

// authenticate stores the identity of the request in c and reports whether
// a valid token was found.
func authenticate(c echo.Context, secret string) bool {
	r := c.Request()
	sess, ok := session.Read(r)
	if !ok {
		// Fall back to the Authorization header for non-browser callers.
		auth := r.Header.Get("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			return false
		}
		sess = model.Session{Token: strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))}
	}
	if sess.Token == "" {
		return false
	}

	claims, err := utils.ParseToken(sess.Token, secret, time.Now())
	if err != nil {
		return false
	}

	// The user cookie is a display snapshot; the token decides who the
	// caller is.  A snapshot belonging to somebody else is discarded.
	user := sess.User
	if user.ID != "" && user.ID != claims.Subject {
		user = model.User{}
	}
	// Role comes from the token only; a snapshot role is never trusted.
	user.ID = claims.Subject
	user.Role = ""
	if r := model.Role(claims.Role); r.Valid() {
		user.Role = r
	}

	c.Set(ctxUserID, user.ID)
	c.Set(ctxRole, string(user.Role))
	c.Set(ctxToken, sess.Token)
	c.Set(ctxUser, user)
	return true
}
