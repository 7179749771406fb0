package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared/query"
)

// blogService implements blog.Service on top of the repository.
type blogService struct {
	repo blog.Repository
}

func NewBlogService(repo blog.Repository) blog.Service {
	return &blogService{repo: repo}
}

// ========================================
// BLOG OPERATIONS
// ========================================

func (s *blogService) Create(ctx context.Context, req blog.CreateBlogRequest) (*blog.CreatedResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. BUILD ENTITY
	// A blog is born with an empty comment sequence.
	b := &blog.Blog{
		ID:       uuid.New(),
		Category: req.Category,
		Title:    req.Title,
		Cover:    req.Cover,
		ReadTime: req.ReadTime,
		AuthorID: req.AuthorID,
		Comments: []blog.Comment{},
	}

	// 3. PERSIST
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return &blog.CreatedResponse{ID: b.ID}, nil
}

func (s *blogService) GetByID(ctx context.Context, id uuid.UUID) (*blog.Blog, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *blogService) List(ctx context.Context, q query.ListQuery) (*blog.ListResult, error) {
	blogs, total, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}

	return &blog.ListResult{
		Blogs:      blogs,
		Total:      total,
		TotalPages: query.TotalPages(total, q.Limit),
	}, nil
}

func (s *blogService) Update(ctx context.Context, id uuid.UUID, req blog.UpdateBlogRequest) (*blog.Blog, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. LOAD CURRENT STATE
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. SHALLOW MERGE - absent fields are retained
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Cover != nil {
		b.Cover = *req.Cover
	}
	if req.ReadTime != nil {
		b.ReadTime = req.ReadTime
	}
	if req.AuthorID != nil {
		b.AuthorID = req.AuthorID
	}

	// 4. PERSIST
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	b.UpdatedAt = time.Now()

	return b, nil
}

func (s *blogService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ========================================
// COMMENT OPERATIONS
// ========================================

func (s *blogService) AddComment(ctx context.Context, blogID uuid.UUID, req blog.CreateCommentRequest) (*blog.Blog, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. ASSIGN ID + TIMESTAMP
	// Both are server-side; whatever the client sent for them is ignored.
	c := blog.Comment{
		ID:          uuid.New(),
		Comment:     req.Comment,
		CommentDate: time.Now().UTC(),
	}

	// 3. ATOMIC APPEND
	return s.repo.AppendComment(ctx, blogID, c)
}

func (s *blogService) ListComments(ctx context.Context, blogID uuid.UUID) ([]blog.Comment, error) {
	b, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}
	return b.Comments, nil
}

func (s *blogService) GetComment(ctx context.Context, blogID, commentID uuid.UUID) (*blog.Comment, error) {
	b, err := s.repo.FindByID(ctx, blogID)
	if err != nil {
		return nil, err
	}

	// Linear scan; comment sequences stay small.
	for i := range b.Comments {
		if b.Comments[i].ID == commentID {
			return &b.Comments[i], nil
		}
	}

	return nil, blog.NewCommentNotFoundError(commentID)
}

func (s *blogService) UpdateComment(ctx context.Context, blogID, commentID uuid.UUID, req blog.UpdateCommentRequest) (*blog.Blog, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. NOTHING PROVIDED - still verify the target, then return unchanged
	if req.Comment == nil {
		if _, err := s.GetComment(ctx, blogID, commentID); err != nil {
			return nil, err
		}
		return s.repo.FindByID(ctx, blogID)
	}

	// 3. ROW-LOCKED REWRITE - id and comment_date survive
	return s.repo.UpdateComment(ctx, blogID, commentID, *req.Comment)
}

func (s *blogService) DeleteComment(ctx context.Context, blogID, commentID uuid.UUID) (*blog.Blog, error) {
	// Unknown comment ids succeed silently; only a missing blog errors.
	return s.repo.RemoveComment(ctx, blogID, commentID)
}
