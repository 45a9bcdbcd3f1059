package backend

import (
	"context"
	"net/http"
	"net/url"

	"tablenow/models"
)

// AuthExchange is the backend's answer to a signup/login token exchange: its
// own session token plus the profile record it holds for the user.
type AuthExchange struct {
	Token   string          `json:"token"`
	User    *models.Profile `json:"user,omitempty"`
	Message string          `json:"message,omitempty"`
}

type signupRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Type  string `json:"type"`
	Token string `json:"token"`
}

// Signup registers a provider-authenticated user with the backend and
// exchanges the provider token for a backend session token.
func (c *Client) Signup(ctx context.Context, name, email, providerToken string) (*AuthExchange, error) {
	payload := signupRequest{Name: name, Email: email, Type: "user", Token: providerToken}
	var exchange AuthExchange
	if err := c.do(ctx, http.MethodPost, "signup", nil, "", payload, &exchange); err != nil {
		return nil, err
	}
	return &exchange, nil
}

type loginRequest struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

// Login exchanges a provider token for a backend session token.
func (c *Client) Login(ctx context.Context, providerToken string) (*AuthExchange, error) {
	payload := loginRequest{Token: providerToken, Type: "user"}
	var exchange AuthExchange
	if err := c.do(ctx, http.MethodPost, "login", nil, "", payload, &exchange); err != nil {
		return nil, err
	}
	return &exchange, nil
}

// VerifyToken exchanges a URL-carried token for a backend session token.
func (c *Client) VerifyToken(ctx context.Context, token string) (string, error) {
	params := url.Values{}
	params.Set("token", token)
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodGet, "verify-token", params, "", nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// VerifyUser fetches the profile record behind a backend session token.
func (c *Client) VerifyUser(ctx context.Context, token string) (*models.Profile, error) {
	var profile models.Profile
	if err := c.do(ctx, http.MethodGet, "verify-user", nil, token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}
