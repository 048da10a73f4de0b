// Package user manages the user directory and its persistence.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User represents one directory entry. UserID is the external (WeChat)
// identifier, distinct from the numeric row id.
type User struct {
	ID           int       `json:"id"`
	UserID       string    `json:"userid"`
	UserName     string    `json:"user_name"`
	Comment      *string   `json:"comment,omitempty"`
	Role         string    `json:"role"`
	ExtraMessage *string   `json:"extra_message,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when a user does not exist.
var ErrNotFound = errors.New("user not found")

// ErrAlreadyExists is returned when a userid is already registered.
var ErrAlreadyExists = errors.New("user already exists")

const userColumns = `id, userid, user_name, comment, role, extra_message, created_at, updated_at`

// Repository handles all user database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the created record.
func (r *Repository) Create(ctx context.Context, userID, userName string, comment *string, role string, extraMessage *string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (userid, user_name, comment, role, extra_message)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+userColumns,
		userID, userName, comment, role, extraMessage,
	).Scan(&u.ID, &u.UserID, &u.UserName, &u.Comment, &u.Role, &u.ExtraMessage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// GetByID fetches a user by their numeric id.
func (r *Repository) GetByID(ctx context.Context, id int) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.UserID, &u.UserName, &u.Comment, &u.Role, &u.ExtraMessage, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return u, nil
}

// GetByUserID fetches a user by their external identifier.
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE userid = $1`,
		userID,
	).Scan(&u.ID, &u.UserID, &u.UserName, &u.Comment, &u.Role, &u.ExtraMessage, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by userid: %w", err)
	}
	return u, nil
}

// ListAll returns all users, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.UserID, &u.UserName, &u.Comment, &u.Role, &u.ExtraMessage, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Update overwrites the mutable fields of a user and returns the new record.
func (r *Repository) Update(ctx context.Context, id int, userName string, comment *string, role string, extraMessage *string) (*User, error) {
	u := &User{}
	err := r.db.QueryRow(ctx,
		`UPDATE users
		 SET user_name = $2, comment = $3, role = $4, extra_message = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, userName, comment, role, extraMessage,
	).Scan(&u.ID, &u.UserID, &u.UserName, &u.Comment, &u.Role, &u.ExtraMessage, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete removes a user by their numeric id. Returns ErrNotFound when no row matched.
func (r *Repository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
