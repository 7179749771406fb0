package blog

import (
	"context"

	"github.com/google/uuid"

	"blog-backend/internal/shared/query"
)

// ListResult is one page of blogs plus the pagination figures computed over
// the same filter set.
type ListResult struct {
	Blogs      []Blog
	Total      int
	TotalPages int
}

// Service is the business logic contract for the blog domain.
type Service interface {
	// Blogs
	Create(ctx context.Context, req CreateBlogRequest) (*CreatedResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Blog, error)
	List(ctx context.Context, q query.ListQuery) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateBlogRequest) (*Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Embedded comments
	AddComment(ctx context.Context, blogID uuid.UUID, req CreateCommentRequest) (*Blog, error)
	ListComments(ctx context.Context, blogID uuid.UUID) ([]Comment, error)
	GetComment(ctx context.Context, blogID, commentID uuid.UUID) (*Comment, error)
	UpdateComment(ctx context.Context, blogID, commentID uuid.UUID, req UpdateCommentRequest) (*Blog, error)
	DeleteComment(ctx context.Context, blogID, commentID uuid.UUID) (*Blog, error)
}
