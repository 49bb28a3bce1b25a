package handler

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/middleware"
)

// OwnerHandler serves an approved hotel owner's properties and bookings.
type OwnerHandler struct {
	API     *apiclient.Client
	Events  StatusEvents
	History HistoryStore
	// Purge drops cached public hotel responses after an owner write.
	Purge func(ctx context.Context)
	Now   func() time.Time
}

func NewOwnerHandler(api *apiclient.Client, events StatusEvents, history HistoryStore, purge func(context.Context)) *OwnerHandler {
	if purge == nil {
		purge = func(context.Context) {}
	}
	return &OwnerHandler{API: api, Events: events, History: history, Purge: purge, Now: time.Now}
}

// hotelForm holds the fields checked before a hotel is forwarded.
type hotelForm struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Category    string `json:"category" validate:"max=50"`
	Location    struct {
		Address string `json:"address"`
		City    string `json:"city" validate:"required"`
		Country string `json:"country"`
	} `json:"location"`
}

func (f *hotelForm) fill(get func(names ...string) string) error {
	f.Name = get("name")
	f.Description = get("description")
	f.Category = get("category")
	f.Location.Address = get("location[address]", "location.address", "address")
	f.Location.City = get("location[city]", "location.city", "city")
	f.Location.Country = get("location[country]", "location.country", "country")
	return nil
}

// roomForm holds the fields checked before a room is forwarded.
type roomForm struct {
	Hotel string `json:"hotel"`
	Name  string `json:"name" validate:"required,max=200"`
	Type  string `json:"type" validate:"max=50"`
	Price struct {
		Base     float64 `json:"base" validate:"gte=0"`
		Currency string  `json:"currency"`
	} `json:"price"`
	Capacity struct {
		Adults   int `json:"adults" validate:"min=1"`
		Children int `json:"children" validate:"min=0"`
	} `json:"capacity"`
	Quantity  int `json:"quantity" validate:"min=1"`
	Available int `json:"available" validate:"min=0,ltefield=Quantity"`
}

// roomFields names each checked room field and the keys it may arrive
// under, JSON paths and multipart names alike.
var roomFields = []struct {
	field string
	names []string
}{
	{"Name", []string{"name"}},
	{"Type", []string{"type"}},
	{"Price.Base", []string{"price.base", "price[base]", "price"}},
	{"Capacity.Adults", []string{"capacity.adults", "capacity[adults]"}},
	{"Capacity.Children", []string{"capacity.children", "capacity[children]"}},
	{"Quantity", []string{"quantity"}},
	{"Available", []string{"available"}},
}

// check validates a new room in full.  An update is checked only on the
// fields it sends; available is compared with quantity when both are sent.
func (f *roomForm) check(form *ownerForm, update bool) error {
	if !update {
		return validate.Struct(f)
	}
	var fields []string
	sent := make(map[string]bool, len(roomFields))
	for _, rf := range roomFields {
		if form.has(rf.names...) {
			sent[rf.field] = true
			fields = append(fields, rf.field)
		}
	}
	if sent["Available"] && !sent["Quantity"] {
		if f.Available < 0 {
			return errAvailableNegative
		}
		fields = slices.DeleteFunc(fields, func(s string) bool { return s == "Available" })
	}
	if len(fields) == 0 {
		return nil
	}
	return validate.StructPartial(f, fields...)
}

var errAvailableNegative = errors.New("available below zero")

func (f *roomForm) fill(get func(names ...string) string) error {
	var err error
	f.Hotel = get("hotel", "hotelId")
	f.Name = get("name")
	f.Type = get("type")
	f.Price.Currency = get("price[currency]", "price.currency", "currency")
	if f.Price.Base, err = formFloat(get("price[base]", "price.base", "price")); err != nil {
		return err
	}
	if f.Capacity.Adults, err = formInt(get("capacity[adults]", "capacity.adults")); err != nil {
		return err
	}
	if f.Capacity.Children, err = formInt(get("capacity[children]", "capacity.children")); err != nil {
		return err
	}
	if f.Quantity, err = formInt(get("quantity")); err != nil {
		return err
	}
	if f.Available, err = formInt(get("available")); err != nil {
		return err
	}
	return nil
}

// MyHotels lists the owner's hotels, approved or not.
func (h *OwnerHandler) MyHotels(c echo.Context) error {
	hotels, err := h.API.MyHotels(c.Request().Context(), middleware.Token(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": hotels, "count": len(hotels)})
}

// CreateHotel submits a new hotel for admin approval.
func (h *OwnerHandler) CreateHotel(c echo.Context) error { return h.saveHotel(c, "") }

// UpdateHotel edits one of the owner's hotels.
func (h *OwnerHandler) UpdateHotel(c echo.Context) error { return h.saveHotel(c, c.Param("id")) }

func (h *OwnerHandler) saveHotel(c echo.Context, id string) error {
	form, err := readOwnerForm(c.Request())
	if err != nil {
		return formError(c, err)
	}
	var hf hotelForm
	if err := form.decode(&hf, hf.fill); err != nil {
		return formError(c, err)
	}
	if err := validate.Struct(&hf); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}

	ctx := c.Request().Context()
	hotel, err := h.API.SaveHotel(ctx, middleware.Token(c), id, form.contentType, form.body())
	if err != nil {
		return respondError(c, err)
	}
	h.Purge(ctx)
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, hotel)
}

// DeleteHotel removes one of the owner's hotels.
func (h *OwnerHandler) DeleteHotel(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.API.DeleteHotel(ctx, middleware.Token(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	h.Purge(ctx)
	return c.JSON(http.StatusOK, echo.Map{"message": "Hotel deleted"})
}

// CreateRoom adds a room to one of the owner's hotels.
func (h *OwnerHandler) CreateRoom(c echo.Context) error { return h.saveRoom(c, "") }

// UpdateRoom edits a room.
func (h *OwnerHandler) UpdateRoom(c echo.Context) error { return h.saveRoom(c, c.Param("id")) }

// saveRoom checks the room before forwarding it: at least one adult of
// capacity, at least one unit and no more available units than exist.
// Updates may send only the fields that change.
func (h *OwnerHandler) saveRoom(c echo.Context, id string) error {
	form, err := readOwnerForm(c.Request())
	if err != nil {
		return formError(c, err)
	}
	var rf roomForm
	if err := form.decode(&rf, rf.fill); err != nil {
		return formError(c, err)
	}
	if id == "" && rf.Hotel == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "hotel is required"})
	}
	if err := rf.check(form, id != ""); err != nil {
		if errors.Is(err, errAvailableNegative) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Available must be at least 0"})
		}
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}

	ctx := c.Request().Context()
	room, err := h.API.SaveRoom(ctx, middleware.Token(c), id, form.contentType, form.body())
	if err != nil {
		return respondError(c, err)
	}
	h.Purge(ctx)
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	return c.JSON(status, room)
}

// DeleteRoom removes a room.
func (h *OwnerHandler) DeleteRoom(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.API.DeleteRoom(ctx, middleware.Token(c), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	h.Purge(ctx)
	return c.JSON(http.StatusOK, echo.Map{"message": "Room deleted"})
}
