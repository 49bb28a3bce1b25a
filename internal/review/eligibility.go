// Package review decides which bookings may be reviewed.
package review

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// DefaultConcurrency bounds the eligibility lookups Annotate runs at once.
const DefaultConcurrency = 4

// Lookup is the eligibility boundary of the REST API.
type Lookup interface {
	ReviewEligibility(ctx context.Context, token, bookingID string) (model.Eligibility, error)
}

// Checker looks up review eligibility for checked-out bookings.
type Checker struct {
	lookup Lookup
	limit  int
}

func NewChecker(l Lookup, concurrency int) *Checker {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Checker{lookup: l, limit: concurrency}
}

// Check returns the eligibility of b.  Only checked-out bookings reach the
// backend.  A failed lookup is logged and reported as not eligible.
func (c *Checker) Check(ctx context.Context, token string, b model.Booking) model.Eligibility {
	if b.Status != model.StatusCheckedOut || b.ID == "" {
		return model.Eligibility{}
	}
	el, err := c.lookup.ReviewEligibility(ctx, token, b.ID)
	if err != nil {
		log.Printf("review: eligibility for booking %s: %v", b.ID, err)
		return model.Eligibility{}
	}
	if el.HasReview {
		el.Eligible = false
	}
	return el
}

// Annotate checks every booking concurrently.  The result is keyed by
// booking id and holds an entry only for checked-out bookings.
func (c *Checker) Annotate(ctx context.Context, token string, bookings []model.Booking) map[string]model.Eligibility {
	out := make([]model.Eligibility, len(bookings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.limit)
	for i, b := range bookings {
		i, b := i, b
		if b.Status != model.StatusCheckedOut {
			continue
		}
		g.Go(func() error {
			out[i] = c.Check(gctx, token, b)
			return nil
		})
	}
	_ = g.Wait()

	res := make(map[string]model.Eligibility)
	for i, b := range bookings {
		if b.Status == model.StatusCheckedOut {
			res[b.ID] = out[i]
		}
	}
	return res
}

// CanSubmit reports whether a new review may be posted for a booking with
// eligibility el.
func CanSubmit(el model.Eligibility) bool {
	return el.Eligible && !el.HasReview
}
