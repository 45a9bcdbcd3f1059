package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultProviderBaseURL is the Firebase Identity Toolkit endpoint used for
// email/password account creation and sign-in.
const DefaultProviderBaseURL = "https://identitytoolkit.googleapis.com/v1"

// ProviderUser is the identity provider's view of an account after a
// successful credential exchange.
type ProviderUser struct {
	UID         string
	Email       string
	DisplayName string
	IDToken     string
}

// ProviderClient talks to the identity provider's REST surface. Password
// sign-in is a client capability; the Admin SDK only verifies the resulting
// tokens.
type ProviderClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewProviderClient creates an identity-provider client for the given web
// API key.
func NewProviderClient(apiKey string) *ProviderClient {
	return &ProviderClient{
		APIKey:     apiKey,
		BaseURL:    DefaultProviderBaseURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type credentialRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type credentialResponse struct {
	LocalID     string `json:"localId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	IDToken     string `json:"idToken"`
}

// SignUp creates an email/password account and returns the issued identity.
func (p *ProviderClient) SignUp(ctx context.Context, email, password string) (*ProviderUser, error) {
	return p.exchange(ctx, "accounts:signUp", email, password)
}

// SignIn verifies email/password credentials and returns the issued
// identity.
func (p *ProviderClient) SignIn(ctx context.Context, email, password string) (*ProviderUser, error) {
	return p.exchange(ctx, "accounts:signInWithPassword", email, password)
}

func (p *ProviderClient) exchange(ctx context.Context, action, email, password string) (*ProviderUser, error) {
	payload := credentialRequest{Email: email, Password: password, ReturnSecureToken: true}
	var resp credentialResponse
	if err := p.post(ctx, action, payload, &resp); err != nil {
		return nil, err
	}
	return &ProviderUser{
		UID:         resp.LocalID,
		Email:       resp.Email,
		DisplayName: resp.DisplayName,
		IDToken:     resp.IDToken,
	}, nil
}

type passwordUpdateRequest struct {
	IDToken           string `json:"idToken"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

// UpdatePassword changes the password behind a live provider token and
// returns the re-issued token.
func (p *ProviderClient) UpdatePassword(ctx context.Context, idToken, newPassword string) (string, error) {
	payload := passwordUpdateRequest{IDToken: idToken, Password: newPassword, ReturnSecureToken: true}
	var resp credentialResponse
	if err := p.post(ctx, "accounts:update", payload, &resp); err != nil {
		return "", err
	}
	return resp.IDToken, nil
}

func (p *ProviderClient) post(ctx context.Context, action string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("provider: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/%s?key=%s", strings.TrimSuffix(p.BaseURL, "/"), action, p.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("provider: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider: request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("provider: failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseProviderError(data)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("provider: failed to decode response: %w", err)
	}
	return nil
}

// parseProviderError extracts the provider's error code. The code doubles
// as the user-facing message for codes without a friendlier mapping.
func parseProviderError(data []byte) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil || payload.Error.Message == "" {
		return &ProviderError{Code: "UNKNOWN", Message: "authentication failed"}
	}
	return &ProviderError{Code: payload.Error.Message, Message: payload.Error.Message}
}
