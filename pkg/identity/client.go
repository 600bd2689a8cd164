package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com"

// ErrUnauthenticated is returned when a token is missing, malformed or
// rejected by the identity provider.
var ErrUnauthenticated = errors.New("unauthenticated")

type Identity struct {
	UID         string
	Email       string
	DisplayName string
}

type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

type lookupRequest struct {
	IDToken string `json:"idToken"`
}

type lookupResponse struct {
	Users []struct {
		LocalID     string `json:"localId"`
		Email       string `json:"email"`
		DisplayName string `json:"displayName"`
		Disabled    bool   `json:"disabled"`
	} `json:"users"`
}

func NewClient(apiKey string) *Client {
	return &Client{
		BaseURL: defaultBaseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Verify resolves a bearer token to a verified identity via the provider's
// token lookup endpoint. Every call re-verifies; results are not cached.
func (c *Client) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	jsonData, err := json.Marshal(lookupRequest{IDToken: token})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request data: %w", err)
	}

	url := fmt.Sprintf("%s/v1/accounts:lookup?key=%s", c.BaseURL, c.APIKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	// The provider answers 400 for expired, tampered or wrong-issuer tokens.
	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthenticated
	}

	var lookup lookupResponse
	if err := json.Unmarshal(body, &lookup); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if len(lookup.Users) == 0 || lookup.Users[0].Disabled {
		return nil, ErrUnauthenticated
	}

	user := lookup.Users[0]
	return &Identity{
		UID:         user.LocalID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}
