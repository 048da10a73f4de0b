package user

import (
	"context"
	"errors"
)

// Roles a user may hold.
const (
	RoleAdmin = "ADMIN"
	RoleVIP   = "VIP"
	RoleGuest = "GUEST"
)

// ErrInvalidRole is returned when a role is outside the allowed enum.
var ErrInvalidRole = errors.New("invalid role")

// ErrMissingField is returned when a required field is empty.
var ErrMissingField = errors.New("missing required field")

// Store is the persistence the user service drives. *Repository implements
// it; tests substitute a fake.
type Store interface {
	Create(ctx context.Context, userID, userName string, comment *string, role string, extraMessage *string) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	GetByUserID(ctx context.Context, userID string) (*User, error)
	ListAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, id int, userName string, comment *string, role string, extraMessage *string) (*User, error)
	Delete(ctx context.Context, id int) error
}

// Service contains business logic for the user directory.
type Service struct {
	store Store
}

// NewService creates a new user Service.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ValidRole reports whether role is one of the allowed values.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleVIP, RoleGuest:
		return true
	}
	return false
}

// Create registers a new directory entry. Role defaults to GUEST.
func (s *Service) Create(ctx context.Context, userID, userName string, comment *string, role string, extraMessage *string) (*User, error) {
	if userID == "" || userName == "" {
		return nil, ErrMissingField
	}
	if role == "" {
		role = RoleGuest
	}
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.store.Create(ctx, userID, userName, comment, role, extraMessage)
}

// GetByID returns a user by their numeric id.
func (s *Service) GetByID(ctx context.Context, id int) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// GetByUserID returns a user by their external identifier.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*User, error) {
	return s.store.GetByUserID(ctx, userID)
}

// ListAll returns all users, newest first.
func (s *Service) ListAll(ctx context.Context) ([]User, error) {
	return s.store.ListAll(ctx)
}

// Update overwrites the mutable fields of a user.
func (s *Service) Update(ctx context.Context, id int, userName string, comment *string, role string, extraMessage *string) (*User, error) {
	if userName == "" {
		return nil, ErrMissingField
	}
	if role == "" {
		role = RoleGuest
	}
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return s.store.Update(ctx, id, userName, comment, role, extraMessage)
}

// Delete removes a user by their numeric id.
func (s *Service) Delete(ctx context.Context, id int) error {
	return s.store.Delete(ctx, id)
}
