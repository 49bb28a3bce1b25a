package model

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusCheckedIn  BookingStatus = "checked_in"
	StatusCheckedOut BookingStatus = "checked_out"
	StatusCancelled  BookingStatus = "cancelled"
)

// PaymentStatus tracks the payment attached to a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Guests counts the people staying in the room.
type Guests struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
}

// Total returns adults plus children.
func (g Guests) Total() int { return g.Adults + g.Children }

// Booking is a reservation of one room for a date range by one customer.
// Customer, Hotel and Room arrive either as ids or as embedded documents.
//
// Fields:
//
//	CheckIn, CheckOut  – calendar dates, CheckOut strictly after CheckIn.
//	TotalAmount        – nights × base room rate.
//	CancellationReason – set only when Status is cancelled.
type Booking struct {
	ID                 string        `json:"_id"`
	Customer           Ref[User]     `json:"customer"`
	Hotel              Ref[Hotel]    `json:"hotel"`
	Room               Ref[Room]     `json:"room"`
	CheckIn            Date          `json:"checkIn"`
	CheckOut           Date          `json:"checkOut"`
	Guests             Guests        `json:"guests"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentStatus `json:"paymentStatus,omitempty"`
	TotalAmount        float64       `json:"totalAmount"`
	SpecialRequests    string        `json:"specialRequests,omitempty"`
	CancellationReason string        `json:"cancellationReason,omitempty"`
	CreatedAt          *time.Time    `json:"createdAt,omitempty"`
	UpdatedAt          *time.Time    `json:"updatedAt,omitempty"`
}

// BookingEvent records one status change observed by the gateway.
type BookingEvent struct {
	ID         string        `json:"id"`
	BookingID  string        `json:"booking_id"`
	HotelID    string        `json:"hotel_id,omitempty"`
	ActorID    string        `json:"actor_id"`
	ActorRole  string        `json:"actor_role"`
	FromStatus BookingStatus `json:"from_status,omitempty"`
	ToStatus   BookingStatus `json:"to_status"`
	Reason     string        `json:"reason,omitempty"`
	OccurredAt time.Time     `json:"occurred_at"`
}
