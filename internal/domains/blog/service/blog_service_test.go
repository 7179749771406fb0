package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/blog"
	"blog-backend/internal/shared/query"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	blogs map[uuid.UUID]*blog.Blog
}

func newMockRepository() *mockRepository {
	return &mockRepository{blogs: make(map[uuid.UUID]*blog.Blog)}
}

func cloneBlog(b *blog.Blog) *blog.Blog {
	clone := *b
	clone.Comments = append([]blog.Comment{}, b.Comments...)
	return &clone
}

func (m *mockRepository) Create(_ context.Context, b *blog.Blog) error {
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.blogs[b.ID] = cloneBlog(b)
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*blog.Blog, error) {
	b, ok := m.blogs[id]
	if !ok {
		return nil, blog.NewBlogNotFoundError(id)
	}
	return cloneBlog(b), nil
}

func (m *mockRepository) List(_ context.Context, q query.ListQuery) ([]blog.Blog, int, error) {
	all := make([]blog.Blog, 0, len(m.blogs))
	for _, b := range m.blogs {
		matches := true
		for _, f := range q.Filters {
			if f.Column == "category" && b.Category != f.Value {
				matches = false
			}
		}
		if matches {
			all = append(all, *cloneBlog(b))
		}
	}

	total := len(all)
	if q.Skip >= total {
		return []blog.Blog{}, total, nil
	}
	end := q.Skip + q.Limit
	if end > total {
		end = total
	}
	return all[q.Skip:end], total, nil
}

func (m *mockRepository) Update(_ context.Context, b *blog.Blog) error {
	if _, ok := m.blogs[b.ID]; !ok {
		return blog.NewBlogNotFoundError(b.ID)
	}
	stored := cloneBlog(b)
	stored.Comments = m.blogs[b.ID].Comments
	m.blogs[b.ID] = stored
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.blogs[id]; !ok {
		return blog.NewBlogNotFoundError(id)
	}
	delete(m.blogs, id)
	return nil
}

func (m *mockRepository) AppendComment(_ context.Context, blogID uuid.UUID, c blog.Comment) (*blog.Blog, error) {
	b, ok := m.blogs[blogID]
	if !ok {
		return nil, blog.NewBlogNotFoundError(blogID)
	}
	b.Comments = append(b.Comments, c)
	return cloneBlog(b), nil
}

func (m *mockRepository) UpdateComment(_ context.Context, blogID, commentID uuid.UUID, text string) (*blog.Blog, error) {
	b, ok := m.blogs[blogID]
	if !ok {
		return nil, blog.NewBlogNotFoundError(blogID)
	}
	for i := range b.Comments {
		if b.Comments[i].ID == commentID {
			b.Comments[i].Comment = text
			return cloneBlog(b), nil
		}
	}
	return nil, blog.NewCommentNotFoundError(commentID)
}

func (m *mockRepository) RemoveComment(_ context.Context, blogID, commentID uuid.UUID) (*blog.Blog, error) {
	b, ok := m.blogs[blogID]
	if !ok {
		return nil, blog.NewBlogNotFoundError(blogID)
	}
	kept := b.Comments[:0]
	for _, c := range b.Comments {
		if c.ID != commentID {
			kept = append(kept, c)
		}
	}
	b.Comments = kept
	return cloneBlog(b), nil
}

func newTestService() (blog.Service, *mockRepository) {
	repo := newMockRepository()
	return NewBlogService(repo), repo
}

func createBlog(t *testing.T, svc blog.Service) uuid.UUID {
	t.Helper()
	res, err := svc.Create(context.Background(), blog.CreateBlogRequest{
		Category: "tech",
		Title:    "On Embedded Documents",
		Cover:    "https://cdn.example.com/cover.png",
	})
	require.NoError(t, err)
	return res.ID
}

// ============================================================================
// BLOG CRUD
// ============================================================================

func TestCreate_RequiresMandatoryFields(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), blog.CreateBlogRequest{
		Category: "tech",
		Title:    "Missing cover",
	})
	assert.Error(t, err)
}

func TestCreate_StartsWithEmptyComments(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	b, err := svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.NotNil(t, b.Comments)
	assert.Empty(t, b.Comments)
}

func TestGetByID_UnknownIDNamesItInTheError(t *testing.T) {
	svc, _ := newTestService()
	missing := uuid.New()

	_, err := svc.GetByID(context.Background(), missing)
	require.Error(t, err)
	assert.True(t, blog.IsNotFound(err))
	assert.Contains(t, err.Error(), missing.String())
}

func TestUpdate_MergesProvidedFields(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	newTitle := "Renamed"
	updated, err := svc.Update(context.Background(), id, blog.UpdateBlogRequest{
		Title: &newTitle,
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "tech", updated.Category, "absent fields must be retained")
}

func TestDelete_RemovesBlogAndItsComments(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	_, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "doomed"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), id))

	_, err = svc.ListComments(context.Background(), id)
	assert.True(t, blog.IsNotFound(err), "comments must not outlive their blog")
}

func TestList_TotalPagesCeil(t *testing.T) {
	svc, _ := newTestService()
	for i := 0; i < 25; i++ {
		createBlog(t, svc)
	}

	res, err := svc.List(context.Background(), query.ListQuery{
		Sort:  query.Sort{Column: "created_at", Desc: true},
		Limit: 10,
		Skip:  0,
	})
	require.NoError(t, err)

	assert.Equal(t, 25, res.Total)
	assert.Equal(t, 3, res.TotalPages)
	assert.Len(t, res.Blogs, 10)
}

// ============================================================================
// COMMENT LIFECYCLE
// ============================================================================

func TestAddComment_AppendsAtTheEndWithServerAssignedFields(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	before := time.Now().Add(-time.Second)

	first, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "first"})
	require.NoError(t, err)
	second, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "second"})
	require.NoError(t, err)

	require.Len(t, first.Comments, 1)
	require.Len(t, second.Comments, 2)

	assert.Equal(t, "first", second.Comments[0].Comment, "insertion order must be preserved")
	assert.Equal(t, "second", second.Comments[1].Comment)

	assert.NotEqual(t, uuid.Nil, second.Comments[0].ID)
	assert.NotEqual(t, second.Comments[0].ID, second.Comments[1].ID)
	assert.True(t, second.Comments[0].CommentDate.After(before))
}

func TestAddComment_UnknownBlog(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.AddComment(context.Background(), uuid.New(), blog.CreateCommentRequest{Comment: "orphan"})
	assert.True(t, blog.IsNotFound(err))
}

func TestGetComment_AfterAppendReturnsTheContent(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	b, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "hello"})
	require.NoError(t, err)

	got, err := svc.GetComment(context.Background(), id, b.Comments[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Comment)
}

func TestGetComment_UnknownCommentNamesItInTheError(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)
	missing := uuid.New()

	_, err := svc.GetComment(context.Background(), id, missing)
	require.Error(t, err)
	assert.True(t, blog.IsNotFound(err))
	assert.Contains(t, err.Error(), missing.String())
}

func TestUpdateComment_PreservesIDAndDate(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	b, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "draft"})
	require.NoError(t, err)
	original := b.Comments[0]

	newText := "final"
	updated, err := svc.UpdateComment(context.Background(), id, original.ID, blog.UpdateCommentRequest{
		Comment: &newText,
	})
	require.NoError(t, err)

	require.Len(t, updated.Comments, 1)
	assert.Equal(t, "final", updated.Comments[0].Comment)
	assert.Equal(t, original.ID, updated.Comments[0].ID)
	assert.True(t, original.CommentDate.Equal(updated.Comments[0].CommentDate))
}

func TestUpdateComment_EmptyPayloadLeavesCommentUntouched(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	b, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "stays"})
	require.NoError(t, err)

	updated, err := svc.UpdateComment(context.Background(), id, b.Comments[0].ID, blog.UpdateCommentRequest{})
	require.NoError(t, err)
	assert.Equal(t, "stays", updated.Comments[0].Comment)
}

func TestDeleteComment_RemovesOnlyTheTarget(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	b, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "keep"})
	require.NoError(t, err)
	keepID := b.Comments[0].ID
	b, err = svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "drop"})
	require.NoError(t, err)
	dropID := b.Comments[1].ID

	updated, err := svc.DeleteComment(context.Background(), id, dropID)
	require.NoError(t, err)

	require.Len(t, updated.Comments, 1)
	assert.Equal(t, keepID, updated.Comments[0].ID)
}

func TestDeleteComment_UnknownCommentSilentlySucceeds(t *testing.T) {
	svc, _ := newTestService()
	id := createBlog(t, svc)

	_, err := svc.AddComment(context.Background(), id, blog.CreateCommentRequest{Comment: "only"})
	require.NoError(t, err)

	updated, err := svc.DeleteComment(context.Background(), id, uuid.New())
	require.NoError(t, err)
	assert.Len(t, updated.Comments, 1, "no error and no change for unknown comment ids")
}

func TestDeleteComment_UnknownBlogStillErrors(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.DeleteComment(context.Background(), uuid.New(), uuid.New())
	assert.True(t, blog.IsNotFound(err))
}
