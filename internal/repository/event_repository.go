package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// mysqlDuplicateEntry is the server error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// EventRepo stores booking status changes.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// Insert stores ev.  Re-inserting an event id returns ErrDuplicate.
func (r *EventRepo) Insert(ctx context.Context, ev model.BookingEvent) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO booking_events
		 (id, booking_id, hotel_id, actor_id, actor_role, from_status, to_status, reason, occurred_at)
		 VALUES (?,?,?,?,?,?,?,?,?)`,
		ev.ID, ev.BookingID, ev.HotelID, ev.ActorID, ev.ActorRole,
		string(ev.FromStatus), string(ev.ToStatus), ev.Reason, ev.OccurredAt.UTC())
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}

// ListByBooking returns the status trail of one booking, oldest first.
func (r *EventRepo) ListByBooking(ctx context.Context, bookingID string) ([]model.BookingEvent, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, booking_id, hotel_id, actor_id, actor_role, from_status, to_status, reason, occurred_at
		 FROM booking_events WHERE booking_id=? ORDER BY occurred_at, id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.BookingEvent{}
	for rows.Next() {
		var (
			ev       model.BookingEvent
			from, to string
		)
		if err := rows.Scan(&ev.ID, &ev.BookingID, &ev.HotelID, &ev.ActorID, &ev.ActorRole,
			&from, &to, &ev.Reason, &ev.OccurredAt); err != nil {
			return nil, err
		}
		ev.FromStatus = model.BookingStatus(from)
		ev.ToStatus = model.BookingStatus(to)
		out = append(out, ev)
	}
	return out, rows.Err()
}
