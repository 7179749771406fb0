package blog

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// BLOG DTOs
// ========================================

// CreateBlogRequest carries the new post payload.
// Category, title and cover are mandatory; the rest is optional.
type CreateBlogRequest struct {
	Category string     `json:"category" binding:"required"`
	Title    string     `json:"title" binding:"required"`
	Cover    string     `json:"cover" binding:"required"`
	ReadTime *ReadTime  `json:"read_time,omitempty"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
}

func (r CreateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category,
			validation.Required.Error("category is required"),
			validation.Length(1, 100),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(1, 255),
		),
		validation.Field(&r.Cover,
			validation.Required.Error("cover is required"),
			validation.Length(1, 2048),
		),
	)
}

// UpdateBlogRequest is a shallow merge: provided fields overwrite, absent
// fields are retained. Embedded comments are never touched through this path.
type UpdateBlogRequest struct {
	Category *string    `json:"category,omitempty"`
	Title    *string    `json:"title,omitempty"`
	Cover    *string    `json:"cover,omitempty"`
	ReadTime *ReadTime  `json:"read_time,omitempty"`
	AuthorID *uuid.UUID `json:"author_id,omitempty"`
}

func (r UpdateBlogRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Category,
			validation.When(r.Category != nil, validation.Length(1, 100)),
		),
		validation.Field(&r.Title,
			validation.When(r.Title != nil, validation.Length(1, 255)),
		),
		validation.Field(&r.Cover,
			validation.When(r.Cover != nil, validation.Length(1, 2048)),
		),
	)
}

// CreatedResponse is the 201 payload: the new blog's id only.
type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

// ========================================
// COMMENT DTOs
// ========================================

// CreateCommentRequest carries the comment body text only; the server
// assigns the id and the timestamp.
type CreateCommentRequest struct {
	Comment string `json:"comment" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment,
			validation.Required.Error("comment is required"),
			validation.Length(1, 5000),
		),
	)
}

// UpdateCommentRequest is a shallow merge over the stored comment; only the
// text is mutable, id and comment_date are preserved.
type UpdateCommentRequest struct {
	Comment *string `json:"comment,omitempty"`
}

func (r UpdateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Comment,
			validation.When(r.Comment != nil, validation.Length(1, 5000)),
		),
	)
}
