package router // package router defines how HTTP routes are registered for the gateway

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/hotel-booking-gateway/internal/handler"    // handlers that implement each operation
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware" // session authentication and role enforcement
)

// RegisterRoutes registers routes that do not touch the backend.  Currently
// it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the session endpoints.  Register, login, logout and
// the OAuth callback need no session; /v1/auth/me does, for every role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Logout works without a valid session so a stale cookie can always be cleared.
	g.POST("/logout", a.Logout, middleware.OptionalSession(jwtSecret))
	g.GET("/oauth/callback", a.OAuthCallback)
	g.GET("/me", a.Me, middleware.SessionAuth(jwtSecret))
}

// RegisterPublic registers the guest browsing endpoints.  Hotel reads go
// through the response cache; the debounced search does not, since each of
// its requests must reach the debouncer.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1")
	g.GET("/hotels", p.ListHotels, cache)
	g.GET("/hotels/search", p.SearchHotels)
	g.GET("/hotels/:id", p.GetHotel, cache)
	g.GET("/hotels/:id/rooms", p.HotelRooms, cache)
	g.GET("/hotels/:id/reviews", p.HotelReviews, cache)
	g.GET("/stay/defaults", p.StayDefaults)
	g.POST("/stay/quote", p.StayQuote)
}
