package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateAccessToken(t *testing.T) {
	t.Parallel()

	m := NewManager("super-secret", 15, 72)

	tok, err := m.GenerateAccessToken("author-123", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := m.ValidateAccessToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "author-123", claims.AuthorID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "access", claims.Type)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	t.Parallel()

	// Negative expiry makes the token already expired at issue time.
	m := NewManager("secret", -1, 72)

	tok, err := m.GenerateAccessToken("a1", "author")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(tok)
	assert.Error(t, err)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := NewManager("right-secret", 15, 72)
	verifier := NewManager("wrong-secret", 15, 72)

	tok, err := issuer.GenerateAccessToken("a2", "author")
	require.NoError(t, err)

	_, err = verifier.ValidateAccessToken(tok)
	assert.Error(t, err)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	t.Parallel()

	m := NewManager("k", 15, 72)

	_, err := m.ValidateAccessToken("not.a.jwt")
	assert.Error(t, err)
}

func TestValidateAccessToken_RejectsRefreshToken(t *testing.T) {
	t.Parallel()

	m := NewManager("secret", 15, 72)

	tok, err := m.GenerateRefreshToken("a3")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(tok)
	assert.Error(t, err)

	claims, err := m.ValidateRefreshToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "a3", claims.AuthorID)
	assert.Empty(t, claims.Role)
}
