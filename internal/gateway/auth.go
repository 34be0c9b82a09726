package gateway

import (
	"context"
	"net/http"

	"smartride-portal/pkg/utils"
)

// Login authenticates a driver or passenger. Failures are *AuthError.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	payload := map[string]string{"email": email, "password": password}
	return c.login(ctx, c.api("/auth/login", nil), payload)
}

// AdminLogin authenticates against the admin endpoint, which takes a
// username rather than an email.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (*LoginResponse, error) {
	payload := map[string]string{"username": username, "password": password}
	return c.login(ctx, c.api("/admin/login", nil), payload)
}

func (c *Client) login(ctx context.Context, target string, payload any) (*LoginResponse, error) {
	// Never send a stale bearer token with credentials.
	ctx = utils.SetTokenContext(ctx, "")

	var resp LoginResponse
	if err := c.fetch(ctx, http.MethodPost, target, payload, &resp); err != nil {
		return nil, &AuthError{Message: Message(err, "Login failed"), Err: err}
	}
	if resp.Token == "" {
		return nil, &AuthError{Message: "Login failed"}
	}
	return &resp, nil
}

// Register creates an account. It does not log the user in.
func (c *Client) Register(ctx context.Context, payload RegisterPayload) (string, error) {
	ctx = utils.SetTokenContext(ctx, "")
	return c.send(ctx, http.MethodPost, c.api("/auth/register", nil), payload)
}
