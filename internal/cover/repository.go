// Package cover manages the cover-image catalog: metadata rows, the object
// storage lifecycle, and the at-most-one-primary invariant.
package cover

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CoverPicture represents one catalog entry. picture_name doubles as the
// storage object key suffix (covers/{picture_name}).
type CoverPicture struct {
	ID           int       `json:"id"`
	PictureName  string    `json:"picture_name"`
	FileURL      string    `json:"file_url"`
	PrimaryCover bool      `json:"primary_cover"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ErrNotFound is returned when a cover does not exist.
var ErrNotFound = errors.New("cover not found")

// ErrAlreadyExists is returned when a picture name is already taken.
var ErrAlreadyExists = errors.New("cover already exists")

// Repository handles all cover_pictures database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new cover record and returns it.
func (r *Repository) Create(ctx context.Context, pictureName, fileURL string) (*CoverPicture, error) {
	p := &CoverPicture{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO cover_pictures (picture_name, file_url)
		 VALUES ($1, $2)
		 RETURNING id, picture_name, file_url, primary_cover, created_at, updated_at`,
		pictureName, fileURL,
	).Scan(&p.ID, &p.PictureName, &p.FileURL, &p.PrimaryCover, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create cover: %w", err)
	}
	return p, nil
}

// GetByName fetches a cover by its picture name.
func (r *Repository) GetByName(ctx context.Context, pictureName string) (*CoverPicture, error) {
	p := &CoverPicture{}
	err := r.db.QueryRow(ctx,
		`SELECT id, picture_name, file_url, primary_cover, created_at, updated_at
		 FROM cover_pictures WHERE picture_name = $1`,
		pictureName,
	).Scan(&p.ID, &p.PictureName, &p.FileURL, &p.PrimaryCover, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cover by name: %w", err)
	}
	return p, nil
}

// ListAll returns all covers, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]CoverPicture, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, picture_name, file_url, primary_cover, created_at, updated_at
		 FROM cover_pictures ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list covers: %w", err)
	}
	defer rows.Close()

	var pictures []CoverPicture
	for rows.Next() {
		var p CoverPicture
		if err := rows.Scan(&p.ID, &p.PictureName, &p.FileURL, &p.PrimaryCover, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cover: %w", err)
		}
		pictures = append(pictures, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list covers: %w", err)
	}
	return pictures, nil
}

// DeleteByName removes a cover row. Returns ErrNotFound when no row matched.
func (r *Repository) DeleteByName(ctx context.Context, pictureName string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM cover_pictures WHERE picture_name = $1`,
		pictureName,
	)
	if err != nil {
		return fmt.Errorf("delete cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPrimary promotes the named cover to primary. Clearing the flag on every
// row and setting it on the target run in one transaction, so at most one
// record is primary at any observable point and a successful promotion never
// leaves zero primaries.
func (r *Repository) SetPrimary(ctx context.Context, pictureName string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx,
		`UPDATE cover_pictures SET primary_cover = FALSE, updated_at = NOW()
		 WHERE primary_cover`,
	)
	if err != nil {
		return fmt.Errorf("clear primary covers: %w", err)
	}

	tag, err := tx.Exec(ctx,
		`UPDATE cover_pictures SET primary_cover = TRUE, updated_at = NOW()
		 WHERE picture_name = $1`,
		pictureName,
	)
	if err != nil {
		return fmt.Errorf("set primary cover: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
