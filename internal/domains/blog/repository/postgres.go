package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared/query"
	"blog-backend/pkg/cache"
	"blog-backend/pkg/database"
)

const cacheTTL = 15 * time.Minute

// postgresRepository - raw SQL with pgxpool, cache-aside on point reads.
// Comments live in the blogs.comments jsonb column; append and remove are
// single atomic UPDATEs, comment rewrite takes a row lock.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) blog.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

func cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("blog:%s", id)
}

// blogColumns is the SELECT/RETURNING list every full-row scan uses.
const blogColumns = `id, category, title, cover, read_time_value, read_time_unit,
	author_id, comments, created_at, updated_at`

// ============================================
// BLOG CRUD
// ============================================

func (r *postgresRepository) Create(ctx context.Context, b *blog.Blog) error {
	query := `
		INSERT INTO blogs (id, category, title, cover, read_time_value, read_time_unit, author_id, comments, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	var rtValue *int
	var rtUnit *string
	if b.ReadTime != nil {
		rtValue = &b.ReadTime.Value
		rtUnit = &b.ReadTime.Unit
	}

	commentsJSON, err := json.Marshal(b.Comments)
	if err != nil {
		return fmt.Errorf("failed to marshal comments: %w", err)
	}

	err = r.pool.QueryRow(ctx, query,
		b.ID, b.Category, b.Title, b.Cover, rtValue, rtUnit, b.AuthorID, commentsJSON,
	).Scan(&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}

	return nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	// Cache-aside: try Redis before hitting Postgres.
	var cached blog.Blog
	if found, err := r.cache.Get(ctx, cacheKey(id), &cached); err != nil {
		log.Printf("[CACHE] blog read error: %v", err)
	} else if found {
		return &cached, nil
	}

	q := fmt.Sprintf(`SELECT %s FROM blogs WHERE id = $1`, blogColumns)

	b, err := scanBlog(r.pool.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, blog.NewBlogNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find blog: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey(id), b, cacheTTL); err != nil {
		log.Printf("[CACHE] blog write error: %v", err)
	}

	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, q query.ListQuery) ([]blog.Blog, int, error) {
	whereClause, args := buildWhereClause(q.Filters)

	// Total count over the same filter set; page math depends on it.
	countQuery := `SELECT COUNT(*) FROM blogs` + whereClause
	var total int
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count blogs: %w", err)
	}

	direction := "ASC"
	if q.Sort.Desc {
		direction = "DESC"
	}

	// Sort column comes from the whitelist, never from raw input.
	listQuery := fmt.Sprintf(`SELECT %s FROM blogs%s ORDER BY %s %s LIMIT $%d OFFSET $%d`,
		blogColumns, whereClause, q.Sort.Column, direction, len(args)+1, len(args)+2)
	args = append(args, q.Limit, q.Skip)

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list blogs: %w", err)
	}
	defer rows.Close()

	blogs := make([]blog.Blog, 0, q.Limit)
	for rows.Next() {
		b, err := scanBlog(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows error: %w", err)
	}

	return blogs, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *blog.Blog) error {
	query := `
		UPDATE blogs
		SET category = $2, title = $3, cover = $4, read_time_value = $5,
		    read_time_unit = $6, author_id = $7, updated_at = NOW()
		WHERE id = $1
	`

	var rtValue *int
	var rtUnit *string
	if b.ReadTime != nil {
		rtValue = &b.ReadTime.Value
		rtUnit = &b.ReadTime.Unit
	}

	tag, err := r.pool.Exec(ctx, query,
		b.ID, b.Category, b.Title, b.Cover, rtValue, rtUnit, b.AuthorID,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.NewBlogNotFoundError(b.ID)
	}

	r.invalidate(ctx, b.ID)
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Embedded comments go with the row; there is nothing else to clean up.
	tag, err := r.pool.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return blog.NewBlogNotFoundError(id)
	}

	r.invalidate(ctx, id)
	return nil
}

// ============================================
// EMBEDDED COMMENTS
// ============================================

func (r *postgresRepository) AppendComment(ctx context.Context, blogID uuid.UUID, c blog.Comment) (*blog.Blog, error) {
	commentJSON, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal comment: %w", err)
	}

	// `||` appends at the end of the jsonb array in one atomic statement,
	// so concurrent appends interleave without losing elements.
	q := fmt.Sprintf(`
		UPDATE blogs
		SET comments = comments || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, blogColumns)

	b, err := scanBlog(r.pool.QueryRow(ctx, q, blogID, commentJSON))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, blog.NewBlogNotFoundError(blogID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to append comment: %w", err)
	}

	r.invalidate(ctx, blogID)
	return b, nil
}

func (r *postgresRepository) UpdateComment(ctx context.Context, blogID, commentID uuid.UUID, text string) (*blog.Blog, error) {
	// Read-modify-write under FOR UPDATE so two concurrent comment rewrites
	// on the same blog serialize instead of overwriting each other.
	return database.WithTransactionResult(ctx, r.pool, func(tx pgx.Tx) (*blog.Blog, error) {
		var raw []byte
		err := tx.QueryRow(ctx, `SELECT comments FROM blogs WHERE id = $1 FOR UPDATE`, blogID).Scan(&raw)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, blog.NewBlogNotFoundError(blogID)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to lock blog: %w", err)
		}

		var comments []blog.Comment
		if err := json.Unmarshal(raw, &comments); err != nil {
			return nil, fmt.Errorf("failed to unmarshal comments: %w", err)
		}

		found := false
		for i := range comments {
			if comments[i].ID == commentID {
				// id and comment_date stay as appended.
				comments[i].Comment = text
				found = true
				break
			}
		}
		if !found {
			return nil, blog.NewCommentNotFoundError(commentID)
		}

		updated, err := json.Marshal(comments)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal comments: %w", err)
		}

		q := fmt.Sprintf(`
			UPDATE blogs
			SET comments = $2::jsonb, updated_at = NOW()
			WHERE id = $1
			RETURNING %s
		`, blogColumns)

		b, err := scanBlog(tx.QueryRow(ctx, q, blogID, updated))
		if err != nil {
			return nil, fmt.Errorf("failed to update comment: %w", err)
		}

		r.invalidate(ctx, blogID)
		return b, nil
	})
}

func (r *postgresRepository) RemoveComment(ctx context.Context, blogID, commentID uuid.UUID) (*blog.Blog, error) {
	// Filter-and-rebuild in one atomic statement. jsonb_agg keeps the input
	// order, and COALESCE restores '[]' when the last comment goes. An
	// unknown comment id simply filters nothing out.
	q := fmt.Sprintf(`
		UPDATE blogs
		SET comments = COALESCE(
			(SELECT jsonb_agg(c) FROM jsonb_array_elements(comments) AS c WHERE c->>'id' <> $2),
			'[]'::jsonb
		), updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, blogColumns)

	b, err := scanBlog(r.pool.QueryRow(ctx, q, blogID, commentID.String()))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, blog.NewBlogNotFoundError(blogID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to remove comment: %w", err)
	}

	r.invalidate(ctx, blogID)
	return b, nil
}

// ============================================
// HELPER METHODS
// ============================================

// buildWhereClause turns equality filters into a parameterized WHERE clause.
// Title matches as a case-insensitive substring, everything else exactly.
func buildWhereClause(filters []query.Filter) (string, []interface{}) {
	if len(filters) == 0 {
		return "", nil
	}

	conditions := make([]string, 0, len(filters))
	args := make([]interface{}, 0, len(filters))

	for i, f := range filters {
		if f.Column == "title" {
			conditions = append(conditions, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", i+1))
		} else {
			conditions = append(conditions, fmt.Sprintf("%s = $%d", f.Column, i+1))
		}
		args = append(args, f.Value)
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

// scanBlog reads one full blog row, including the embedded comments.
func scanBlog(row pgx.Row) (*blog.Blog, error) {
	var b blog.Blog
	var rtValue *int
	var rtUnit *string
	var rawComments []byte

	err := row.Scan(
		&b.ID, &b.Category, &b.Title, &b.Cover, &rtValue, &rtUnit,
		&b.AuthorID, &rawComments, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if rtValue != nil && rtUnit != nil {
		b.ReadTime = &blog.ReadTime{Value: *rtValue, Unit: *rtUnit}
	}

	if err := json.Unmarshal(rawComments, &b.Comments); err != nil {
		return nil, fmt.Errorf("failed to unmarshal comments: %w", err)
	}
	if b.Comments == nil {
		b.Comments = []blog.Comment{}
	}

	return &b, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, cacheKey(id)); err != nil {
		log.Printf("[CACHE] blog invalidate error: %v", err)
	}
}
