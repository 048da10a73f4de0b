package counter

import "context"

// Store is the persistence the counter service drives. *Repository
// implements it; tests substitute a fake.
type Store interface {
	Increment(ctx context.Context) (int, error)
	Clear(ctx context.Context) error
	Get(ctx context.Context) (int, error)
}

// Service contains business logic for the counter.
type Service struct {
	store Store
}

// NewService creates a new counter Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Increment bumps the counter and returns the new value.
func (s *Service) Increment(ctx context.Context) (int, error) {
	return s.store.Increment(ctx)
}

// Clear resets the counter by removing its row.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Get returns the current count, 0 when the counter was never incremented.
func (s *Service) Get(ctx context.Context) (int, error) {
	return s.store.Get(ctx)
}
