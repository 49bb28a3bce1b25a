// Package queue defines the booking events exchanged over the message
// broker and the consumer that records them.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// StatusChangedQueue is the durable queue carrying BookingStatusChangedEvent.
const StatusChangedQueue = "booking.status_changed"

// BookingStatusChangedEvent is published after the backend accepted a status
// update or a cancellation.  It carries enough to append to the booking's
// history without asking the backend again.
type BookingStatusChangedEvent struct {
	EventID    string              `json:"event_id"`
	BookingID  string              `json:"booking_id"`
	HotelID    string              `json:"hotel_id,omitempty"`
	ActorID    string              `json:"actor_id"`
	ActorRole  string              `json:"actor_role"`
	FromStatus model.BookingStatus `json:"from_status"`
	ToStatus   model.BookingStatus `json:"to_status"`
	Reason     string              `json:"reason,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}

// NewStatusChangedEvent stamps a fresh event id and time on a transition of b.
func NewStatusChangedEvent(b model.Booking, from model.BookingStatus, actor model.User, reason string, now time.Time) BookingStatusChangedEvent {
	return BookingStatusChangedEvent{
		EventID:    uuid.NewString(),
		BookingID:  b.ID,
		HotelID:    b.Hotel.ID(),
		ActorID:    actor.ID,
		ActorRole:  string(actor.Role),
		FromStatus: from,
		ToStatus:   b.Status,
		Reason:     reason,
		OccurredAt: now.UTC(),
	}
}

// Record converts the event to its stored form.
func (e BookingStatusChangedEvent) Record() model.BookingEvent {
	return model.BookingEvent{
		ID:         e.EventID,
		BookingID:  e.BookingID,
		HotelID:    e.HotelID,
		ActorID:    e.ActorID,
		ActorRole:  e.ActorRole,
		FromStatus: e.FromStatus,
		ToStatus:   e.ToStatus,
		Reason:     e.Reason,
		OccurredAt: e.OccurredAt,
	}
}
