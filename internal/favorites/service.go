package favorites

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/iliyamo/hotel-booking-gateway/internal/model"
)

// ErrNoHotel is returned when Add or Remove is called without a hotel id.
var ErrNoHotel = errors.New("hotel id is required")

// Backend is the favorites boundary of the REST API.
type Backend interface {
	Favorites(ctx context.Context, token string) ([]model.Hotel, error)
	AddToFavorites(ctx context.Context, token, hotelID string) error
	RemoveFromFavorites(ctx context.Context, token, hotelID string) error
}

// Service reconciles the local lists with the backend.  Local state changes
// only after the backend call succeeds; a failed call is rolled back by
// refetching, never by a compensating call.
type Service struct {
	backend Backend
	store   Store
}

func NewService(b Backend, s Store) *Service {
	return &Service{backend: b, store: s}
}

// List refetches the favorites from the backend and replaces the local list.
func (s *Service) List(ctx context.Context, userID, token string) ([]model.Hotel, error) {
	hotels, err := s.backend.Favorites(ctx, token)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(hotels))
	for _, h := range hotels {
		ids = append(ids, h.ID)
	}
	if err := s.store.Replace(ctx, userID, ids); err != nil {
		log.Printf("favorites: cache list for %s: %v", userID, err)
	}
	return hotels, nil
}

// IDs returns the local list, loading it from the backend when absent.
func (s *Service) IDs(ctx context.Context, userID, token string) ([]string, error) {
	set, err := s.local(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	return set.IDs(), nil
}

// Add favorites hotelID.  Adding a hotel that is already a favorite is a
// no-op and does not reach the backend.
func (s *Service) Add(ctx context.Context, userID, token, hotelID string) ([]string, error) {
	return s.toggle(ctx, userID, token, hotelID, true)
}

// Remove unfavorites hotelID, again idempotently.
func (s *Service) Remove(ctx context.Context, userID, token, hotelID string) ([]string, error) {
	return s.toggle(ctx, userID, token, hotelID, false)
}

func (s *Service) toggle(ctx context.Context, userID, token, hotelID string, want bool) ([]string, error) {
	if hotelID == "" {
		return nil, ErrNoHotel
	}
	set, err := s.local(ctx, userID, token)
	if err != nil {
		return nil, err
	}
	if set.Contains(hotelID) == want {
		return set.IDs(), nil
	}

	if want {
		err = s.backend.AddToFavorites(ctx, token, hotelID)
	} else {
		err = s.backend.RemoveFromFavorites(ctx, token, hotelID)
	}
	if err != nil {
		if _, rerr := s.List(ctx, userID, token); rerr != nil {
			log.Printf("favorites: refetch after failed update for %s: %v", userID, rerr)
		}
		return nil, err
	}

	if want {
		set.Add(hotelID)
		err = s.store.Add(ctx, userID, hotelID)
	} else {
		set.Remove(hotelID)
		err = s.store.Remove(ctx, userID, hotelID)
	}
	if err != nil {
		log.Printf("favorites: update local list for %s: %v", userID, err)
	}
	return set.IDs(), nil
}

func (s *Service) local(ctx context.Context, userID, token string) (*Set, error) {
	set, err := s.store.Get(ctx, userID)
	if err == nil {
		return set, nil
	}
	if !errors.Is(err, ErrNotLoaded) {
		log.Printf("favorites: read local list for %s: %v", userID, err)
	}
	hotels, err := s.List(ctx, userID, token)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	set = NewSet()
	for _, h := range hotels {
		set.Add(h.ID)
	}
	return set, nil
}
