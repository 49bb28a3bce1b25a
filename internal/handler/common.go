// Package handler exposes the gateway's HTTP handlers.  Each handler runs the
// client-side guards of its operation and forwards what survives to the
// booking backend.
package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/booking"
	"github.com/iliyamo/hotel-booking-gateway/internal/favorites"
)

var validate = validator.New()

// bindValid decodes the request body into dst and validates its struct tags.
// On failure it writes the 400 response itself and returns false.
func bindValid(c echo.Context, dst any) (bool, error) {
	if err := c.Bind(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := validate.Struct(dst); err != nil {
		return false, c.JSON(http.StatusBadRequest, echo.Map{"error": validationMessage(err)})
	}
	return true, nil
}

// validationMessage turns the first failed field into a sentence.
func validationMessage(err error) string {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return "invalid body"
	}
	fe := ves[0]
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "ltefield":
		return fmt.Sprintf("%s must not exceed %s", field, fe.Param())
	}
	return fmt.Sprintf("%s is invalid", field)
}

// respondError maps an error to the gateway's JSON error reply:
// client-side validation is 422, a guarded transition is 409, a backend
// failure keeps the backend status and message, and anything else (network,
// decoding) is 502 with the generic message.
func respondError(c echo.Context, err error) error {
	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": ve.Message, "field": ve.Field})
	}
	var te *booking.TransitionError
	if errors.As(err, &te) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":   fmt.Sprintf("Cannot change a %s booking to %s.", humanStatus(string(te.From)), humanStatus(string(te.To))),
			"allowed": booking.NextStatuses(te.From),
		})
	}
	if errors.Is(err, booking.ErrUnknownStatus) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown booking status"})
	}
	if errors.Is(err, favorites.ErrNoHotel) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if errors.Is(err, favorites.ErrNotLoaded) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": apiclient.FallbackMessage})
	}
	var ae *apiclient.APIError
	if errors.As(err, &ae) {
		return c.JSON(ae.Status, echo.Map{"error": ae.Message})
	}
	log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
	return c.JSON(http.StatusBadGateway, echo.Map{"error": apiclient.FallbackMessage})
}

// humanStatus renders checked_in as "checked in".
func humanStatus(s string) string { return strings.ReplaceAll(s, "_", " ") }
