package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/coverbox/service/internal/user"
)

type fakeStore struct {
	users  []*user.User
	nextID int
}

func (f *fakeStore) Create(_ context.Context, userID, userName string, comment *string, role string, extraMessage *string) (*user.User, error) {
	for _, u := range f.users {
		if u.UserID == userID {
			return nil, user.ErrAlreadyExists
		}
	}
	f.nextID++
	u := &user.User{
		ID:           f.nextID,
		UserID:       userID,
		UserName:     userName,
		Comment:      comment,
		Role:         role,
		ExtraMessage: extraMessage,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users = append([]*user.User{u}, f.users...)
	return u, nil
}

func (f *fakeStore) GetByID(_ context.Context, id int) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeStore) GetByUserID(_ context.Context, userID string) (*user.User, error) {
	for _, u := range f.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeStore) ListAll(_ context.Context) ([]user.User, error) {
	out := make([]user.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id int, userName string, comment *string, role string, extraMessage *string) (*user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			u.UserName = userName
			u.Comment = comment
			u.Role = role
			u.ExtraMessage = extraMessage
			u.UpdatedAt = time.Now()
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id int) error {
	for i, u := range f.users {
		if u.ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return user.ErrNotFound
}

func TestCreateDefaultsToGuest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := user.NewService(&fakeStore{})

	u, err := svc.Create(ctx, "wx_123", "Alice", nil, "", nil)
	require.NoError(t, err)
	require.Equal(t, user.RoleGuest, u.Role)
}

func TestCreateValidation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := user.NewService(&fakeStore{})

	_, err := svc.Create(ctx, "", "Alice", nil, "", nil)
	require.ErrorIs(t, err, user.ErrMissingField)

	_, err = svc.Create(ctx, "wx_123", "", nil, "", nil)
	require.ErrorIs(t, err, user.ErrMissingField)

	_, err = svc.Create(ctx, "wx_123", "Alice", nil, "SUPERADMIN", nil)
	require.ErrorIs(t, err, user.ErrInvalidRole)
}

func TestCreateDuplicateUserID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := user.NewService(&fakeStore{})

	_, err := svc.Create(ctx, "wx_123", "Alice", nil, user.RoleAdmin, nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, "wx_123", "Bob", nil, user.RoleVIP, nil)
	require.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestLookupByExternalID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := user.NewService(&fakeStore{})

	created, err := svc.Create(ctx, "wx_123", "Alice", nil, user.RoleVIP, nil)
	require.NoError(t, err)

	found, err := svc.GetByUserID(ctx, "wx_123")
	require.NoError(t, err)
	require.Equal(t, created.ID, found.ID)

	_, err = svc.GetByUserID(ctx, "wx_999")
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestUpdateValidatesRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := user.NewService(&fakeStore{})

	u, err := svc.Create(ctx, "wx_123", "Alice", nil, "", nil)
	require.NoError(t, err)

	_, err = svc.Update(ctx, u.ID, "Alice", nil, "ROOT", nil)
	require.ErrorIs(t, err, user.ErrInvalidRole)

	updated, err := svc.Update(ctx, u.ID, "Alice B", nil, user.RoleAdmin, nil)
	require.NoError(t, err)
	require.Equal(t, "Alice B", updated.UserName)
	require.Equal(t, user.RoleAdmin, updated.Role)

	_, err = svc.Update(ctx, 999, "Nobody", nil, "", nil)
	require.ErrorIs(t, err, user.ErrNotFound)
}

func TestDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := user.NewService(&fakeStore{})

	u, err := svc.Create(ctx, "wx_123", "Alice", nil, "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, u.ID))
	require.ErrorIs(t, svc.Delete(ctx, u.ID), user.ErrNotFound)

	users, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, users)
}
