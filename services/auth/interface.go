package auth

import (
	"context"
	"errors"

	"tablenow/backend"
	"tablenow/models"
	"tablenow/services/session"

	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
)

// ErrNoSession signals that no session token exists for the device.
var ErrNoSession = errors.New("auth: no active session")

// AuthService bridges the identity provider and the backend into one
// client-side session.
type AuthService interface {
	// RegisterUser validates the signup form, creates the provider account,
	// exchanges the provider token with the backend, and returns the unified
	// user record.
	RegisterUser(ctx context.Context, deviceID string, input SignupInput) (*models.UserRecord, error)
	// AuthenticateUser verifies credentials with the provider, exchanges the
	// token with the backend, and returns the unified user record.
	AuthenticateUser(ctx context.Context, deviceID, email, password string) (*models.UserRecord, error)
	// Logout tears down the session. Idempotent.
	Logout(ctx context.Context, deviceID string) error
	// VerifyURLToken performs the ?token= exchange on load and returns the
	// fetched profile.
	VerifyURLToken(ctx context.Context, deviceID, token string) (*models.Profile, error)
	// CurrentUser fetches the profile behind the device's session token. A
	// rejected token clears the session.
	CurrentUser(ctx context.Context, deviceID string) (*models.Profile, error)
	// UpdatePassword changes the provider password for the current session.
	UpdatePassword(ctx context.Context, deviceID, newPassword string) error
}

// GuestMerger resolves the device's pending guest bookings into the newly
// authenticated user. Implemented by the booking service.
type GuestMerger interface {
	MergeGuestBookings(ctx context.Context, deviceID string, user *models.UserRecord) (int, error)
}

// TokenVerifier checks the integrity of provider ID tokens. Satisfied by the
// Firebase Admin SDK auth client; nil disables verification.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Provider *ProviderClient
	Backend  *backend.Client
	Store    *session.Store
	Merger   GuestMerger
	Verifier TokenVerifier
	Logger   *zap.Logger
}
