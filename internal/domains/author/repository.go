package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data access contract for author records.
// Kept behind an interface so the service layer can be tested against an
// in-memory implementation.
type Repository interface {
	// Create inserts a new author.
	// Returns ErrEmailAlreadyExists when the email is taken.
	Create(ctx context.Context, a *Author) error

	// FindByID returns ErrAuthorNotFound when the id does not resolve.
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByEmail is used by login and by the identity bridge.
	// Returns ErrAuthorNotFound when no account has the email.
	FindByEmail(ctx context.Context, email string) (*Author, error)

	// FindAll returns every author, newest first. Admin listing only.
	FindAll(ctx context.Context) ([]Author, error)

	// Update persists name/last_name/email/password_hash changes.
	// Returns ErrAuthorNotFound when the row is gone and
	// ErrEmailAlreadyExists when the new email collides.
	Update(ctx context.Context, a *Author) error

	// Delete removes the row. Returns ErrAuthorNotFound when already gone,
	// so a second delete of the same account reports not-found.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail reports whether an account with the email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
