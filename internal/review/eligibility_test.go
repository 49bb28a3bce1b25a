package review

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

type fakeLookup struct {
	calls  atomic.Int32
	result map[string]model.Eligibility
	fail   map[string]bool
}

func (f *fakeLookup) ReviewEligibility(_ context.Context, _ string, id string) (model.Eligibility, error) {
	f.calls.Add(1)
	if f.fail[id] {
		return model.Eligibility{}, errors.New("lookup failed")
	}
	return f.result[id], nil
}

func TestCheckOnlyCheckedOut(t *testing.T) {
	t.Parallel()
	l := &fakeLookup{result: map[string]model.Eligibility{"b1": {Eligible: true}}}
	c := NewChecker(l, 2)

	for _, s := range []model.BookingStatus{model.StatusPending, model.StatusConfirmed, model.StatusCheckedIn, model.StatusCancelled} {
		if el := c.Check(context.Background(), "tok", model.Booking{ID: "b1", Status: s}); el.Eligible {
			t.Errorf("status %s reported eligible", s)
		}
	}
	if n := l.calls.Load(); n != 0 {
		t.Fatalf("backend lookups = %d, want 0", n)
	}
	if el := c.Check(context.Background(), "tok", model.Booking{ID: "b1", Status: model.StatusCheckedOut}); !el.Eligible {
		t.Fatal("checked out booking not eligible")
	}
}

func TestCheckSwallowsErrors(t *testing.T) {
	t.Parallel()
	l := &fakeLookup{fail: map[string]bool{"b1": true}}
	c := NewChecker(l, 1)
	el := c.Check(context.Background(), "tok", model.Booking{ID: "b1", Status: model.StatusCheckedOut})
	if el.Eligible || el.HasReview {
		t.Fatalf("failed lookup = %+v, want zero value", el)
	}
}

func TestAnnotate(t *testing.T) {
	t.Parallel()
	l := &fakeLookup{
		result: map[string]model.Eligibility{
			"b1": {Eligible: true},
			"b2": {Eligible: true, HasReview: true},
		},
		fail: map[string]bool{"b3": true},
	}
	c := NewChecker(l, 2)
	bookings := []model.Booking{
		{ID: "b1", Status: model.StatusCheckedOut},
		{ID: "b2", Status: model.StatusCheckedOut},
		{ID: "b3", Status: model.StatusCheckedOut},
		{ID: "b4", Status: model.StatusConfirmed},
	}
	got := c.Annotate(context.Background(), "tok", bookings)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if !CanSubmit(got["b1"]) {
		t.Error("b1 should accept a review")
	}
	if CanSubmit(got["b2"]) || !got["b2"].HasReview {
		t.Errorf("b2 = %+v, want hasReview and not eligible", got["b2"])
	}
	if CanSubmit(got["b3"]) {
		t.Error("b3 lookup failed but was reported eligible")
	}
	if _, ok := got["b4"]; ok {
		t.Error("confirmed booking should not be annotated")
	}
	if n := l.calls.Load(); n != 3 {
		t.Fatalf("lookups = %d, want 3", n)
	}
}
