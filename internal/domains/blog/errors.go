package blog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NotFoundError reports a missing blog or comment and names the id that was
// not found, so clients can tell which lookup failed on nested paths.
type NotFoundError struct {
	Resource string
	ID       uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Resource, e.ID)
}

func NewBlogNotFoundError(id uuid.UUID) error {
	return &NotFoundError{Resource: "blog", ID: id}
}

func NewCommentNotFoundError(id uuid.UUID) error {
	return &NotFoundError{Resource: "comment", ID: id}
}

// IsNotFound reports whether err is a missing blog or comment.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
