package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"blog-backend/internal/domains/author"
	"blog-backend/pkg/jwt"
)

// ============================================================================
// MOCK REPOSITORY
// ============================================================================

type mockRepository struct {
	authors map[uuid.UUID]*author.Author
}

func newMockRepository() *mockRepository {
	return &mockRepository{authors: make(map[uuid.UUID]*author.Author)}
}

func (m *mockRepository) Create(_ context.Context, a *author.Author) error {
	for _, existing := range m.authors {
		if existing.Email == a.Email {
			return author.ErrEmailAlreadyExists
		}
	}
	clone := *a
	m.authors[a.ID] = &clone
	return nil
}

func (m *mockRepository) FindByID(_ context.Context, id uuid.UUID) (*author.Author, error) {
	a, ok := m.authors[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	clone := *a
	return &clone, nil
}

func (m *mockRepository) FindByEmail(_ context.Context, email string) (*author.Author, error) {
	for _, a := range m.authors {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (m *mockRepository) FindAll(_ context.Context) ([]author.Author, error) {
	out := make([]author.Author, 0, len(m.authors))
	for _, a := range m.authors {
		out = append(out, *a)
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, a *author.Author) error {
	if _, ok := m.authors[a.ID]; !ok {
		return author.ErrAuthorNotFound
	}
	clone := *a
	m.authors[a.ID] = &clone
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.authors[id]; !ok {
		return author.ErrAuthorNotFound
	}
	delete(m.authors, id)
	return nil
}

func (m *mockRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, a := range m.authors {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (author.Service, *mockRepository) {
	repo := newMockRepository()
	manager := jwt.NewManager("test-secret", 15, 72)
	return NewAuthorService(repo, manager), repo
}

func validRegister() author.RegisterRequest {
	return author.RegisterRequest{
		Name:     "Ada",
		LastName: "Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
	}
}

// ============================================================================
// REGISTRATION
// ============================================================================

func TestRegister_HashesPassword(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, resp.ID)

	stored := repo.authors[resp.ID]
	require.NotNil(t, stored)
	require.NotNil(t, stored.PasswordHash)

	// The stored record must never contain the plaintext anywhere.
	assert.NotContains(t, *stored.PasswordHash, "correct-horse")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("correct-horse")))
	assert.Equal(t, author.RoleAuthor, stored.Role)
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestService()

	req := validRegister()
	req.Email = ""

	_, err := svc.Register(context.Background(), req)
	assert.Error(t, err)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegister())
	assert.ErrorIs(t, err, author.ErrEmailAlreadyExists)
}

// ============================================================================
// LOGIN
// ============================================================================

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), author.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "ada@example.com", resp.Author.Email)
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), author.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever-pass",
	})
	_, errWrongPass := svc.Login(context.Background(), author.LoginRequest{
		Email:    "ada@example.com",
		Password: "wrong-password",
	})

	// Undifferentiated outcome: same error value for both failure modes.
	assert.ErrorIs(t, errUnknown, author.ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPass, author.ErrInvalidCredentials)
	assert.Equal(t, errUnknown, errWrongPass)
}

func TestLogin_BridgeAccountHasNoPassword(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.ExternalLogin(context.Background(), author.ExternalProfile{
		Email:      "grace@example.com",
		GivenName:  "Grace",
		FamilyName: "Hopper",
		ExternalID: "google-123",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), author.LoginRequest{
		Email:    "grace@example.com",
		Password: "anything-goes",
	})
	assert.ErrorIs(t, err, author.ErrInvalidCredentials)
}

// ============================================================================
// EXTERNAL IDENTITY BRIDGE
// ============================================================================

func TestExternalLogin_ProvisionsOnFirstSight(t *testing.T) {
	svc, repo := newTestService()

	resp, err := svc.ExternalLogin(context.Background(), author.ExternalProfile{
		Email:      "grace@example.com",
		GivenName:  "Grace",
		FamilyName: "Hopper",
		ExternalID: "google-123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	stored := repo.authors[resp.Author.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "Grace", stored.Name)
	assert.Equal(t, "Hopper", stored.LastName)
	assert.Nil(t, stored.PasswordHash)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "google-123", *stored.GoogleID)
}

func TestExternalLogin_ReusesExistingAccount(t *testing.T) {
	svc, repo := newTestService()

	first, err := svc.ExternalLogin(context.Background(), author.ExternalProfile{
		Email:      "grace@example.com",
		GivenName:  "Grace",
		FamilyName: "Hopper",
		ExternalID: "google-123",
	})
	require.NoError(t, err)

	second, err := svc.ExternalLogin(context.Background(), author.ExternalProfile{
		Email:      "grace@example.com",
		GivenName:  "Grace",
		FamilyName: "Hopper",
		ExternalID: "google-123",
	})
	require.NoError(t, err)

	assert.Equal(t, first.Author.ID, second.Author.ID)
	assert.Len(t, repo.authors, 1)
}

// ============================================================================
// PROFILE + ADMIN
// ============================================================================

func TestUpdateProfile_MergesProvidedFields(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	newName := "Augusta"
	dto, err := svc.UpdateProfile(context.Background(), reg.ID, author.UpdateAuthorRequest{
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "Augusta", dto.Name)
	assert.Equal(t, "Lovelace", dto.LastName, "absent fields must be retained")
	assert.Equal(t, "ada@example.com", dto.Email)
}

func TestDeleteProfile_SecondDeleteReportsNotFound(t *testing.T) {
	svc, _ := newTestService()

	reg, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile(context.Background(), reg.ID))

	err = svc.DeleteProfile(context.Background(), reg.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestListAll_NeverExposesPasswordHash(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	dtos, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, dtos, 1)

	// DTO type has no password field at all; double-check the email made it.
	assert.True(t, strings.HasSuffix(dtos[0].Email, "@example.com"))
}
