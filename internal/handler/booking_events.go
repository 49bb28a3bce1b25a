package handler

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
	"github.com/iliyamo/hotel-booking-gateway/internal/queue"
)

// StatusEvents receives a booking event after the backend accepted a status
// change.  The RabbitMQ publisher and queue.Direct implement it.
type StatusEvents interface {
	PublishStatusChanged(ctx context.Context, ev queue.BookingStatusChangedEvent) error
}

// HistoryStore reads the recorded status trail of a booking.
type HistoryStore interface {
	ListByBooking(ctx context.Context, bookingID string) ([]model.BookingEvent, error)
}

// publishTimeout bounds how long a status change waits on the broker.
const publishTimeout = 5 * time.Second

// publishStatusChange records a transition of b from prev.  Failures are
// logged only: the backend already holds the new status.
func publishStatusChange(events StatusEvents, b model.Booking, prev model.BookingStatus, actor model.User, reason string, now time.Time) {
	if events == nil {
		return
	}
	ev := queue.NewStatusChangedEvent(b, prev, actor, reason, now)
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := events.PublishStatusChanged(ctx, ev); err != nil {
		log.Printf("booking-events: publish %s for booking %s: %v", ev.EventID, b.ID, err)
	}
}

// listHistory writes the status trail of bookingID.  The caller has already
// proven access by fetching the booking from the backend.
func listHistory(c echo.Context, history HistoryStore, bookingID string) error {
	if history == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "Booking history is not available."})
	}
	events, err := history.ListByBooking(c.Request().Context(), bookingID)
	if err != nil {
		log.Printf("booking-events: list history for %s: %v", bookingID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load booking history"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": events})
}
