package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ================================================
// EXTERNAL IDENTITY PROVIDER (Google)
// ================================================
// The provider authenticated the user out-of-band; all we do here is
// exchange the provider access token for the verified profile at the
// userinfo endpoint.

// ErrTokenRejected means the provider did not accept the access token.
var ErrTokenRejected = errors.New("identity provider rejected the token")

// Profile is the subset of userinfo claims the application needs.
type Profile struct {
	Subject    string `json:"sub"`
	Email      string `json:"email"`
	GivenName  string `json:"given_name"`
	FamilyName string `json:"family_name"`
}

// ProfileFetcher resolves a provider access token into a verified profile.
type ProfileFetcher interface {
	Fetch(ctx context.Context, accessToken string) (*Profile, error)
}

type googleFetcher struct {
	userInfoURL string
	client      *http.Client
}

// NewGoogleFetcher builds a fetcher against the configured userinfo endpoint.
func NewGoogleFetcher(userInfoURL string) ProfileFetcher {
	return &googleFetcher{
		userInfoURL: userInfoURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (g *googleFetcher) Fetch(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrTokenRejected
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo endpoint returned %d: %s", resp.StatusCode, body)
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode userinfo response: %w", err)
	}
	if profile.Email == "" || profile.Subject == "" {
		return nil, ErrTokenRejected
	}

	return &profile, nil
}
