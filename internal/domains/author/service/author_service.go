package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/jwt"
)

// bcrypt cost 12: slower than the default on purpose.
const bcryptCost = 12

// authorService implements author.Service.
type authorService struct {
	repo       author.Repository
	jwtManager *jwt.Manager
}

func NewAuthorService(repo author.Repository, jwtManager *jwt.Manager) author.Service {
	return &authorService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Register creates a new author account and returns only its id.
func (s *authorService) Register(ctx context.Context, req author.RegisterRequest) (*author.RegisteredResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. BUSINESS RULE: email must be unique
	exists, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, author.ErrEmailAlreadyExists
	}

	// 3. HASH PASSWORD
	// The plaintext never reaches the repository.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 4. CREATE ENTITY
	role := req.Role
	if role == "" {
		role = author.RoleAuthor
	}

	now := time.Now()
	hash := string(passwordHash)
	newAuthor := &author.Author{
		ID:           uuid.New(),
		Name:         req.Name,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: &hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// 5. PERSIST
	if err := s.repo.Create(ctx, newAuthor); err != nil {
		return nil, err
	}

	return &author.RegisteredResponse{ID: newAuthor.ID}, nil
}

// Login checks credentials and issues tokens. Unknown email and wrong
// password both collapse into ErrInvalidCredentials so callers cannot tell
// which part failed.
func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (*author.LoginResponse, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. FIND ACCOUNT
	a, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return nil, author.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	// 3. VERIFY PASSWORD
	// Bridge-provisioned accounts have no password and cannot log in here.
	if a.PasswordHash == nil {
		return nil, author.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, author.ErrInvalidCredentials
	}

	// 4. ISSUE TOKENS
	return s.issueTokens(a)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The author record is re-read so a role change takes effect immediately.
func (s *authorService) RefreshToken(ctx context.Context, refreshToken string) (*author.LoginResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, author.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.AuthorID)
	if err != nil {
		return nil, author.ErrInvalidToken
	}

	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, author.ErrInvalidToken
	}

	return s.issueTokens(a)
}

// ExternalLogin handles the identity-bridge callback. An existing account
// (matched by email) just gets tokens; an unknown email provisions a new
// passwordless account first.
func (s *authorService) ExternalLogin(ctx context.Context, profile author.ExternalProfile) (*author.LoginResponse, error) {
	// 1. VALIDATE PROFILE
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	// 2. EXISTING ACCOUNT → straight to tokens
	a, err := s.repo.FindByEmail(ctx, profile.Email)
	if err == nil {
		return s.issueTokens(a)
	}
	if !errors.Is(err, author.ErrAuthorNotFound) {
		return nil, fmt.Errorf("find author: %w", err)
	}

	// 3. FIRST SIGHT → provision account without a password
	now := time.Now()
	externalID := profile.ExternalID
	newAuthor := &author.Author{
		ID:        uuid.New(),
		Name:      profile.GivenName,
		LastName:  profile.FamilyName,
		Email:     profile.Email,
		Role:      author.RoleAuthor,
		GoogleID:  &externalID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, newAuthor); err != nil {
		return nil, fmt.Errorf("provision author: %w", err)
	}

	return s.issueTokens(newAuthor)
}

// ========================================
// SELF-SERVICE PROFILE
// ========================================

func (s *authorService) GetProfile(ctx context.Context, authorID uuid.UUID) (*author.AuthorDTO, error) {
	return s.GetByID(ctx, authorID)
}

func (s *authorService) UpdateProfile(ctx context.Context, authorID uuid.UUID, req author.UpdateAuthorRequest) (*author.AuthorDTO, error) {
	return s.UpdateByID(ctx, authorID, req)
}

func (s *authorService) DeleteProfile(ctx context.Context, authorID uuid.UUID) error {
	return s.DeleteByID(ctx, authorID)
}

// ========================================
// LOOKUP + ADMIN
// ========================================

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.AuthorDTO, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}

func (s *authorService) ListAll(ctx context.Context) ([]author.AuthorDTO, error) {
	authors, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]author.AuthorDTO, len(authors))
	for i, a := range authors {
		dtos[i] = a.ToDTO()
	}

	return dtos, nil
}

// UpdateByID merges the provided fields into the stored record, re-running
// registration-level validation on whatever is present.
func (s *authorService) UpdateByID(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.AuthorDTO, error) {
	// 1. VALIDATE INPUT
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// 2. LOAD CURRENT RECORD
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. MERGE PROVIDED FIELDS
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.LastName != nil {
		a.LastName = *req.LastName
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.Password != nil {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash := string(passwordHash)
		a.PasswordHash = &hash
	}

	// 4. PERSIST
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}

	dto := a.ToDTO()
	return &dto, nil
}

func (s *authorService) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ========================================
// HELPERS
// ========================================

func (s *authorService) issueTokens(a *author.Author) (*author.LoginResponse, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(a.ID.String(), string(a.Role))
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(a.ID.String())
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &author.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Author:       a.ToDTO(),
	}, nil
}
