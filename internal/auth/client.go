package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/errors"
	"github.com/ElijahMsheliza/agrilink-nigeria-sub000/pkg/httpclient"
)

// User roles as reported by the auth provider.
const (
	RoleFarmer = "farmer"
	RoleBuyer  = "buyer"
)

// User is the authenticated identity resolved from a bearer token.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Client verifies bearer tokens against the external auth provider. Calls
// go through a circuit breaker so a provider outage fails fast instead of
// tying up request handlers.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewClient creates an auth provider client.
func NewClient(httpClient *httpclient.CircuitBreakerClient, baseURL string, logger *slog.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		logger:  logger,
	}
}

// VerifyToken resolves the user behind a bearer token. An invalid or
// expired token yields an unauthorized error; provider outages surface as
// internal errors so callers can distinguish the two.
func (c *Client) VerifyToken(ctx context.Context, token string) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/v1/user", nil)
	if err != nil {
		return nil, fmt.Errorf("build auth request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call auth provider: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var user User
		if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
			return nil, fmt.Errorf("decode auth response: %w", err)
		}
		return &user, nil

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, apperrors.Unauthorized("invalid or expired token")

	default:
		c.logger.ErrorContext(ctx, "auth provider returned unexpected status",
			slog.Int("status", resp.StatusCode),
		)
		return nil, apperrors.Internal(fmt.Errorf("auth provider status %d", resp.StatusCode))
	}
}
