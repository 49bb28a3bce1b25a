package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/favorites"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
)

// FavoritesHandler serves the customer's favorite hotels.
type FavoritesHandler struct {
	Favorites *favorites.Service
}

func NewFavoritesHandler(f *favorites.Service) *FavoritesHandler {
	return &FavoritesHandler{Favorites: f}
}

// List refetches the favorites from the backend.
func (h *FavoritesHandler) List(c echo.Context) error {
	hotels, err := h.Favorites.List(c.Request().Context(), middleware.UserID(c), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": hotels})
}

// Add favorites a hotel.  Favoriting twice is a no-op.
func (h *FavoritesHandler) Add(c echo.Context) error {
	ids, err := h.Favorites.Add(c.Request().Context(), middleware.UserID(c), middleware.Token(c), c.Param("hotelId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hotelIds": ids})
}

// Remove unfavorites a hotel.  Removing an absent hotel is a no-op.
func (h *FavoritesHandler) Remove(c echo.Context) error {
	ids, err := h.Favorites.Remove(c.Request().Context(), middleware.UserID(c), middleware.Token(c), c.Param("hotelId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"hotelIds": ids})
}
