package author

import (
	"context"

	"github.com/google/uuid"
)

// Service is the business logic contract for the author domain.
type Service interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*RegisteredResponse, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*LoginResponse, error)
	// ExternalLogin handles the identity-bridge callback: it logs in an
	// existing account by email or provisions a new one on first sight.
	ExternalLogin(ctx context.Context, profile ExternalProfile) (*LoginResponse, error)

	// Self-service (scoped to the caller's own identity)
	GetProfile(ctx context.Context, authorID uuid.UUID) (*AuthorDTO, error)
	UpdateProfile(ctx context.Context, authorID uuid.UUID, req UpdateAuthorRequest) (*AuthorDTO, error)
	DeleteProfile(ctx context.Context, authorID uuid.UUID) error

	// Authenticated lookup of any author
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorDTO, error)

	// Admin: same semantics as the self-service variants, arbitrary target
	ListAll(ctx context.Context) ([]AuthorDTO, error)
	UpdateByID(ctx context.Context, id uuid.UUID, req UpdateAuthorRequest) (*AuthorDTO, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}
