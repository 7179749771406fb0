package blog

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared/query"
)

// Repository is the persistence contract for blogs and their embedded
// comments. Comments have no table of their own; every comment operation
// reads or rewrites the owning blog row.
type Repository interface {
	// Create inserts the blog. The caller assigns the id.
	Create(ctx context.Context, b *Blog) error

	// FindByID returns the blog with its full comment sequence, or a
	// blog NotFoundError.
	FindByID(ctx context.Context, id uuid.UUID) (*Blog, error)

	// List returns one page of blogs plus the total count matching the
	// same filters.
	List(ctx context.Context, q query.ListQuery) ([]Blog, int, error)

	// Update overwrites the blog's own fields; comments are untouched.
	// Returns a blog NotFoundError when the row is gone.
	Update(ctx context.Context, b *Blog) error

	// Delete removes the blog row and, with it, every embedded comment.
	Delete(ctx context.Context, id uuid.UUID) error

	// AppendComment atomically appends the comment at the end of the
	// sequence and returns the updated blog.
	AppendComment(ctx context.Context, blogID uuid.UUID, c Comment) (*Blog, error)

	// UpdateComment rewrites one comment's text under a row lock, keeping
	// its id and comment_date. Returns a blog or comment NotFoundError.
	UpdateComment(ctx context.Context, blogID, commentID uuid.UUID, text string) (*Blog, error)

	// RemoveComment atomically filters the comment out of the sequence.
	// An unknown comment id on an existing blog succeeds unchanged.
	RemoveComment(ctx context.Context, blogID, commentID uuid.UUID) (*Blog, error)
}
