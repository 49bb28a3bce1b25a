package booking

import (
	"fmt"
	"math"
	"time"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

const msPerDay = 86_400_000

// Messages shown inline for rejected stays.
const (
	MsgCheckOutAfterCheckIn = "Check-out date must be after check-in date."
	MsgDatesRequired        = "Check-in and check-out dates are required."
	MsgAdultRequired        = "At least one adult is required."
	MsgNegativeGuests       = "Guest counts cannot be negative."
)

// ValidationError is a client-side validation failure.  It blocks the
// submission and is never sent to the backend.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Message }

// Stay is a requested date range and party size.
type Stay struct {
	CheckIn  model.Date   `json:"checkIn"`
	CheckOut model.Date   `json:"checkOut"`
	Guests   model.Guests `json:"guests"`
}

// Quote is a validated stay priced against a room.
type Quote struct {
	Stay
	Nights     int     `json:"nights"`
	BasePrice  float64 `json:"basePrice"`
	Currency   string  `json:"currency,omitempty"`
	TotalPrice float64 `json:"totalPrice"`
}

// ValidateDates rejects missing dates and a check-out on or before check-in.
func ValidateDates(checkIn, checkOut model.Date) error {
	if checkIn.IsZero() || checkOut.IsZero() {
		return &ValidationError{Field: "checkIn", Message: MsgDatesRequired}
	}
	if !checkOut.After(checkIn.Time) {
		return &ValidationError{Field: "checkOut", Message: MsgCheckOutAfterCheckIn}
	}
	return nil
}

// ValidateParty rejects negative counts and a party without an adult.  It
// needs no room, so it runs before anything is fetched.
func ValidateParty(g model.Guests) error {
	if g.Adults < 0 || g.Children < 0 {
		return &ValidationError{Field: "guests", Message: MsgNegativeGuests}
	}
	if g.Adults < 1 {
		return &ValidationError{Field: "guests.adults", Message: MsgAdultRequired}
	}
	return nil
}

// ValidateGuests checks the party against the room capacity.
func ValidateGuests(g model.Guests, c model.Capacity) error {
	if err := ValidateParty(g); err != nil {
		return err
	}
	if g.Adults > c.Adults {
		return &ValidationError{
			Field:   "guests.adults",
			Message: fmt.Sprintf("Maximum occupancy for this room is %d adults.", c.Adults),
		}
	}
	if g.Total() > c.Total() {
		return &ValidationError{
			Field:   "guests",
			Message: fmt.Sprintf("Maximum occupancy for this room is %d guests.", c.Total()),
		}
	}
	return nil
}

// ValidateStay runs the date checks and then the capacity checks.
func ValidateStay(s Stay, c model.Capacity) error {
	if err := ValidateDates(s.CheckIn, s.CheckOut); err != nil {
		return err
	}
	return ValidateGuests(s.Guests, c)
}

// Nights returns ceil((checkOut - checkIn) in ms / 86,400,000).  A range that
// is not positive yields zero.
func Nights(checkIn, checkOut model.Date) int {
	ms := checkOut.Sub(checkIn.Time).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int(math.Ceil(float64(ms) / msPerDay))
}

// TotalPrice is nights × base rate.  No taxes, fees or proration.
func TotalPrice(nights int, base float64) float64 {
	return float64(nights) * base
}

// QuoteStay validates s against room and prices it.
func QuoteStay(s Stay, room model.Room) (Quote, error) {
	if err := ValidateStay(s, room.Capacity); err != nil {
		return Quote{}, err
	}
	n := Nights(s.CheckIn, s.CheckOut)
	return Quote{
		Stay:       s,
		Nights:     n,
		BasePrice:  room.Price.Base,
		Currency:   room.Price.Currency,
		TotalPrice: TotalPrice(n, room.Price.Base),
	}, nil
}

// DefaultStay returns tomorrow → day after tomorrow on now's local calendar,
// for one adult.
func DefaultStay(now time.Time) Stay {
	today := model.DateOf(now)
	return Stay{
		CheckIn:  model.Date{Time: today.AddDate(0, 0, 1)},
		CheckOut: model.Date{Time: today.AddDate(0, 0, 2)},
		Guests:   model.Guests{Adults: 1},
	}
}
