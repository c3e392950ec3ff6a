// Package service contains the business logic for the travel calendar.
// Services validate inputs, assign identifiers, and serialise access to the
// travel store. No storage details live here.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// TravelStore is the collection the service mutates.
// *store.Store satisfies it.
type TravelStore interface {
	Get(id string) (domain.Travel, bool)
	List() []domain.Travel
	Upsert(ctx context.Context, t domain.Travel) error
	Delete(ctx context.Context, id string) (bool, error)
}

// TravelService implements business logic for Travel operations.
// It is safe for concurrent use; every call holds one mutex, which makes the
// HTTP server behave like the single event loop the store expects.
type TravelService struct {
	mu    sync.Mutex
	store TravelStore
	newID func() string
}

// NewTravelService constructs a TravelService over the provided store.
func NewTravelService(s TravelStore) *TravelService {
	return &TravelService{store: s, newID: newID}
}

// newID returns a time-ordered UUIDv7, falling back to a random UUID if the
// clock-based generator fails.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Create validates and persists a new travel with a freshly generated ID.
// Any ID on the input is ignored.
func (s *TravelService) Create(ctx context.Context, t domain.Travel) (domain.Travel, error) {
	t = Normalize(t)
	if err := Validate(t); err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Create: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.newID()
	if err := s.store.Upsert(ctx, t); err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Create: %w", err)
	}
	return t, nil
}

// GetByID returns a single travel by ID.
// Returns domain.ErrNotFound if no travel has that ID.
func (s *TravelService) GetByID(_ context.Context, id string) (domain.Travel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.store.Get(id)
	if !ok {
		return domain.Travel{}, fmt.Errorf("service.TravelService.GetByID: %w", domain.ErrNotFound)
	}
	return t, nil
}

// List returns all travels ordered by start date.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TravelService) List(_ context.Context) ([]domain.Travel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	travels := s.store.List()
	if travels == nil {
		return []domain.Travel{}, nil
	}
	return travels, nil
}

// ListPaged returns one page of the ordered list and the total count.
func (s *TravelService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Travel, int, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, 0, err
	}
	lo, hi := p.Bounds(len(all))
	return all[lo:hi], len(all), nil
}

// Update validates and overwrites an existing travel, keeping its position.
// Returns domain.ErrNotFound if the ID is unknown; an update never creates.
func (s *TravelService) Update(ctx context.Context, t domain.Travel) (domain.Travel, error) {
	t = Normalize(t)
	if err := Validate(t); err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.store.Get(t.ID); !ok {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", domain.ErrNotFound)
	}
	if err := s.store.Upsert(ctx, t); err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", err)
	}
	return t, nil
}

// Delete removes a travel by ID.
// Returns domain.ErrNotFound if nothing was removed.
func (s *TravelService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("service.TravelService.Delete: %w", err)
	}
	if !removed {
		return fmt.Errorf("service.TravelService.Delete: %w", domain.ErrNotFound)
	}
	return nil
}
