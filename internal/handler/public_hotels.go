package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/booking"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/search"
)

// maxPageSize caps the listing page size a client may ask for.
const maxPageSize = 50

// PublicHandler serves the unauthenticated hotel browsing API.
type PublicHandler struct {
	API    *apiclient.Client
	Search *search.Service
	Now    func() time.Time
}

func NewPublicHandler(api *apiclient.Client, s *search.Service) *PublicHandler {
	return &PublicHandler{API: api, Search: s, Now: time.Now}
}

// hotelQuery reads location, category, page and limit from the query string.
func hotelQuery(c echo.Context) apiclient.HotelQuery {
	q := apiclient.HotelQuery{
		Location: c.QueryParam("location"),
		Category: c.QueryParam("category"),
	}
	if n, err := strconv.Atoi(c.QueryParam("page")); err == nil && n > 0 {
		q.Page = n
	}
	if n, err := strconv.Atoi(c.QueryParam("limit")); err == nil && n > 0 {
		q.Limit = min(n, maxPageSize)
	}
	return q
}

// ListHotels returns one page of approved, active hotels.
func (h *PublicHandler) ListHotels(c echo.Context) error {
	page, err := h.API.ListHotels(c.Request().Context(), hotelQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

// SearchHotels is the type-ahead listing.  Requests from one client are
// debounced: only the last of a burst reaches the backend and the ones it
// superseded answer 204.  X-Search-Seq orders the answers so a client can
// drop a response that arrives after a newer one.
func (h *PublicHandler) SearchHotels(c echo.Context) error {
	res, err := h.Search.Search(c.Request().Context(), middleware.ClientKey(c), hotelQuery(c))
	c.Response().Header().Set("X-Search-Seq", strconv.FormatUint(res.Seq, 10))
	if errors.Is(err, search.ErrSuperseded) {
		return c.NoContent(http.StatusNoContent)
	}
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, res.Page)
}

// GetHotel returns one hotel.
func (h *PublicHandler) GetHotel(c echo.Context) error {
	hotel, err := h.API.GetHotel(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hotel)
}

// HotelRooms lists the rooms of a hotel.
func (h *PublicHandler) HotelRooms(c echo.Context) error {
	rooms, err := h.API.HotelRooms(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rooms})
}

// HotelReviews lists the reviews of a hotel.
func (h *PublicHandler) HotelReviews(c echo.Context) error {
	reviews, err := h.API.HotelReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": reviews})
}

// StayDefaults returns the prefilled booking form: tomorrow to the day after,
// one adult.
func (h *PublicHandler) StayDefaults(c echo.Context) error {
	return c.JSON(http.StatusOK, booking.DefaultStay(h.Now()))
}

type quoteReq struct {
	Room     string       `json:"room" validate:"required"`
	CheckIn  model.Date   `json:"checkIn"`
	CheckOut model.Date   `json:"checkOut"`
	Guests   model.Guests `json:"guests"`
}

// StayQuote prices a stay in a room.  The date range is checked before the
// room is fetched; capacity is checked against the fetched room.
func (h *PublicHandler) StayQuote(c echo.Context) error {
	var req quoteReq
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	if err := booking.ValidateDates(req.CheckIn, req.CheckOut); err != nil {
		return respondError(c, err)
	}
	room, err := h.API.GetRoom(c.Request().Context(), req.Room)
	if err != nil {
		return respondError(c, err)
	}
	q, err := booking.QuoteStay(booking.Stay{CheckIn: req.CheckIn, CheckOut: req.CheckOut, Guests: req.Guests}, room)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, q)
}
