package search

import (
	"context"
	"strings"

	"github.com/iliyamo/hotel-booking-gateway/internal/apiclient"
	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// HotelLister is the backend listing call.
type HotelLister interface {
	ListHotels(ctx context.Context, q apiclient.HotelQuery) (model.HotelPage, error)
}

// Service debounces listing fetches per caller.
type Service struct {
	lister HotelLister
	deb    *Debouncer
}

// NewService wires a lister behind a debouncer.
func NewService(l HotelLister, d *Debouncer) *Service {
	return &Service{lister: l, deb: d}
}

// Result is one effective fetch.
type Result struct {
	Seq  uint64
	Page model.HotelPage
}

// Search runs q for the caller identified by key once its input has been
// idle for the debounce delay.  A call superseded by a newer one for the
// same key returns ErrSuperseded without contacting the backend.
func (s *Service) Search(ctx context.Context, key string, q apiclient.HotelQuery) (Result, error) {
	q.Location = strings.TrimSpace(q.Location)
	q.Category = strings.TrimSpace(q.Category)

	var page model.HotelPage
	seq, err := s.deb.Do(ctx, key, func(ctx context.Context) error {
		var err error
		page, err = s.lister.ListHotels(ctx, q)
		return err
	})
	if err != nil {
		return Result{Seq: seq}, err
	}
	return Result{Seq: seq, Page: page}, nil
}
