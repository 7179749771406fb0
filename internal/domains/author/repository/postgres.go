package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/cache"
)

const (
	uniqueViolation = "23505"
	cacheTTL        = 15 * time.Minute
)

// postgresRepository is the concrete author.Repository backed by Postgres
// with a cache-aside layer for point reads.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("author:%s", id.String())
}

// ========================================
// CRUD
// ========================================

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) error {
	query := `
		INSERT INTO authors (
			id, name, last_name, email, password_hash, role, google_id,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.LastName,
		a.Email,
		a.PasswordHash,
		a.Role,
		a.GoogleID,
		a.CreatedAt,
		a.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return author.ErrEmailAlreadyExists
		}
		return fmt.Errorf("create author: %w", err)
	}

	return nil
}

// FindByID uses the cache-aside pattern: check Redis, fall back to
// Postgres, repopulate on miss.
func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	var a author.Author

	found, err := r.cache.Get(ctx, cacheKey(id), &a)
	if err == nil && found {
		return &a, nil
	}

	query := `
		SELECT id, name, last_name, email, password_hash, role, google_id,
		       created_at, updated_at
		FROM authors
		WHERE id = $1
	`

	err = r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.LastName,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.GoogleID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by id: %w", err)
	}

	// Cache set failures never fail the read.
	_ = r.cache.Set(ctx, cacheKey(id), &a, cacheTTL)

	return &a, nil
}

// FindByEmail is not cached: it only runs on login and bridge callbacks.
func (r *postgresRepository) FindByEmail(ctx context.Context, email string) (*author.Author, error) {
	query := `
		SELECT id, name, last_name, email, password_hash, role, google_id,
		       created_at, updated_at
		FROM authors
		WHERE email = $1
	`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Name,
		&a.LastName,
		&a.Email,
		&a.PasswordHash,
		&a.Role,
		&a.GoogleID,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by email: %w", err)
	}

	return &a, nil
}

func (r *postgresRepository) FindAll(ctx context.Context) ([]author.Author, error) {
	query := `
		SELECT id, name, last_name, email, password_hash, role, google_id,
		       created_at, updated_at
		FROM authors
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}
	defer rows.Close()

	authors := []author.Author{}
	for rows.Next() {
		var a author.Author
		if err := rows.Scan(
			&a.ID,
			&a.Name,
			&a.LastName,
			&a.Email,
			&a.PasswordHash,
			&a.Role,
			&a.GoogleID,
			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan author: %w", err)
		}
		authors = append(authors, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) error {
	query := `
		UPDATE authors
		SET name = $2,
		    last_name = $3,
		    email = $4,
		    password_hash = $5,
		    updated_at = $6
		WHERE id = $1
	`

	a.UpdatedAt = time.Now()

	result, err := r.pool.Exec(ctx, query,
		a.ID,
		a.Name,
		a.LastName,
		a.Email,
		a.PasswordHash,
		a.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return author.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update author: %w", err)
	}

	if result.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	// Invalidate so the next read misses and loads fresh data.
	_ = r.cache.Delete(ctx, cacheKey(a.ID))

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete author: %w", err)
	}

	if result.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	_ = r.cache.Delete(ctx, cacheKey(id))

	return nil
}

func (r *postgresRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM authors WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}

	return exists, nil
}
