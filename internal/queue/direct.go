package queue

import (
	"context"
	"errors"

	"github.com/iliyamo/hotel-booking-gateway/internal/repository"
)

// Direct records events straight into a sink.  It stands in for the broker
// when RabbitMQ is not configured but the history database is.
type Direct struct {
	Sink EventSink
}

func (d Direct) PublishStatusChanged(ctx context.Context, ev BookingStatusChangedEvent) error {
	if err := d.Sink.Insert(ctx, ev.Record()); err != nil && !errors.Is(err, repository.ErrDuplicate) {
		return err
	}
	return nil
}
