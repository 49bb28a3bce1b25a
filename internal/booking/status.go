// Package booking holds the rules the gateway enforces on bookings before a
// request ever reaches the backend: the status allow-list and the stay
// validation (dates, capacity, nights, price).
package booking

import (
	"errors"
	"fmt"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// ErrInvalidTransition is wrapped by every rejected status change.
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrUnknownStatus is returned by ParseStatus for values outside the enum.
var ErrUnknownStatus = errors.New("unknown booking status")

// transitions lists the permitted next states per current state.  Terminal
// states map to an empty list.
var transitions = map[model.BookingStatus][]model.BookingStatus{
	model.StatusPending:    {model.StatusConfirmed, model.StatusCancelled},
	model.StatusConfirmed:  {model.StatusCheckedIn, model.StatusCancelled},
	model.StatusCheckedIn:  {model.StatusCheckedOut},
	model.StatusCheckedOut: {},
	model.StatusCancelled:  {},
}

// TransitionError describes a disallowed status pair.
type TransitionError struct {
	From model.BookingStatus
	To   model.BookingStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot change booking status from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// ParseStatus validates a raw status string.
func ParseStatus(s string) (model.BookingStatus, error) {
	st := model.BookingStatus(s)
	if _, ok := transitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// NextStatuses returns a copy of the states reachable from s.
func NextStatuses(s model.BookingStatus) []model.BookingStatus {
	next := transitions[s]
	out := make([]model.BookingStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether from → to is on the allow-list.
func CanTransition(from, to model.BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition returns a *TransitionError when from → to is not permitted.
func Transition(from, to model.BookingStatus) error {
	if !CanTransition(from, to) {
		return &TransitionError{From: from, To: to}
	}
	return nil
}

// IsTerminal reports whether no transition leaves s.
func IsTerminal(s model.BookingStatus) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

// CanCustomerCancel reports whether a customer may still cancel: only
// before check-in.
func CanCustomerCancel(s model.BookingStatus) bool {
	return s == model.StatusPending || s == model.StatusConfirmed
}

// Action is a user-facing operation on a booking.
type Action struct {
	Name   string              `json:"name"`
	Label  string              `json:"label"`
	Target model.BookingStatus `json:"target,omitempty"`
}

var ownerActionByTarget = map[model.BookingStatus]Action{
	model.StatusConfirmed:  {Name: "confirm", Label: "Confirm", Target: model.StatusConfirmed},
	model.StatusCheckedIn:  {Name: "check_in", Label: "Check In", Target: model.StatusCheckedIn},
	model.StatusCheckedOut: {Name: "check_out", Label: "Check Out", Target: model.StatusCheckedOut},
	model.StatusCancelled:  {Name: "cancel", Label: "Cancel", Target: model.StatusCancelled},
}

// OwnerActions returns the actions a hotel owner is offered for a booking in
// state s.  They are derived from the allow-list, so a terminal booking has
// none.
func OwnerActions(s model.BookingStatus) []Action {
	next := transitions[s]
	out := make([]Action, 0, len(next))
	for _, to := range next {
		out = append(out, ownerActionByTarget[to])
	}
	return out
}

// CustomerActions returns the actions a customer is offered.  Cancel is
// present only while CanCustomerCancel holds; review only after check-out.
func CustomerActions(s model.BookingStatus) []Action {
	var out []Action
	if CanCustomerCancel(s) {
		out = append(out, Action{Name: "cancel", Label: "Cancel Booking", Target: model.StatusCancelled})
	}
	if s == model.StatusCheckedOut {
		out = append(out, Action{Name: "review", Label: "Write a Review"})
	}
	return out
}
