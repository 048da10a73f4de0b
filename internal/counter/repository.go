// Package counter implements the single-row visit counter.
package counter

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// counterID is the fixed row the whole API operates on.
const counterID = 1

// Repository handles counter database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new counter Repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Increment bumps the counter by one, creating the row at 1 when absent, and
// returns the new value. The upsert is a single statement so concurrent
// increments cannot lose updates.
func (r *Repository) Increment(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`INSERT INTO counters (id, count) VALUES ($1, 1)
		 ON CONFLICT (id) DO UPDATE
		 SET count = counters.count + 1, updated_at = NOW()
		 RETURNING count`,
		counterID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("increment counter: %w", err)
	}
	return count, nil
}

// Clear removes the counter row. Clearing an absent counter is a no-op.
func (r *Repository) Clear(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM counters WHERE id = $1`, counterID)
	if err != nil {
		return fmt.Errorf("clear counter: %w", err)
	}
	return nil
}

// Get returns the current count, 0 when the row does not exist.
func (r *Repository) Get(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count FROM counters WHERE id = $1`, counterID).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get counter: %w", err)
	}
	return count, nil
}
