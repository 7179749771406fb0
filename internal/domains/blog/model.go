package blog

import (
	"time"

	"github.com/google/uuid"
)

// ReadTime is an estimated reading duration, e.g. {5, "minute"}.
type ReadTime struct {
	Value int    `json:"value"`
	Unit  string `json:"unit"`
}

// Comment lives embedded inside its blog's comments column; it has no
// standalone table. ID and CommentDate are assigned by the server at append
// time and are immutable afterwards.
type Comment struct {
	ID          uuid.UUID `json:"id"`
	Comment     string    `json:"comment"`
	CommentDate time.Time `json:"comment_date"`
}

// Blog is a published post together with its ordered comment sequence.
type Blog struct {
	ID        uuid.UUID  `json:"id"`
	Category  string     `json:"category"`
	Title     string     `json:"title"`
	Cover     string     `json:"cover"`
	ReadTime  *ReadTime  `json:"read_time,omitempty"`
	AuthorID  *uuid.UUID `json:"author_id,omitempty"`
	Comments  []Comment  `json:"comments"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
