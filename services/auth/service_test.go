package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablenow/backend"
	"tablenow/models"
	"tablenow/services/auth"
	"tablenow/services/session"
	"tablenow/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newFakeProvider serves the identity-provider credential endpoints. With
// emailExists set, sign-up reports a duplicate account.
func newFakeProvider(t *testing.T, emailExists bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/accounts:signUp":
			if emailExists {
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"message": "EMAIL_EXISTS"},
				})
				return
			}
			fallthrough
		case "/accounts:signInWithPassword":
			var req struct {
				Email string `json:"email"`
			}
			_ = json.NewDecoder(r.Body).Decode(&req)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"localId":     "uid-1",
				"email":       req.Email,
				"displayName": "Jane",
				"idToken":     "provider-token",
			})
		case "/accounts:update":
			_ = json.NewEncoder(w).Encode(map[string]string{"idToken": "provider-token-2"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// newFakeExchange serves the backend's signup/login/verify endpoints.
func newFakeExchange(t *testing.T) *httptest.Server {
	t.Helper()
	profile := models.Profile{ID: 7, Name: "Jane", Phone: "+45 12 34 56 78"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/signup", "/login":
			_ = json.NewEncoder(w).Encode(backend.AuthExchange{Token: "session-token", User: &profile})
		case "/verify-token":
			if r.URL.Query().Get("token") == "url-token" {
				_ = json.NewEncoder(w).Encode(map[string]string{"token": "session-token"})
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "invalid token"})
		case "/verify-user":
			if r.Header.Get("Authorization") == "Bearer session-token" {
				_ = json.NewEncoder(w).Encode(profile)
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newAuthFixture(t *testing.T, emailExists bool) (*auth.DefaultAuthService, *session.Store, *storage.MemoryDeviceStore) {
	t.Helper()
	providerServer := newFakeProvider(t, emailExists)
	exchangeServer := newFakeExchange(t)

	devices := storage.NewMemoryDeviceStore()
	store := session.NewStore(devices, zap.NewNop())

	provider := auth.NewProviderClient("web-api-key")
	provider.BaseURL = providerServer.URL

	svc := &auth.DefaultAuthService{
		Provider: provider,
		Backend:  backend.NewClient(exchangeServer.URL, "test-key"),
		Store:    store,
		Logger:   zap.NewNop(),
	}
	return svc, store, devices
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()
	const deviceID = "device-1"

	t.Run("unifies provider and backend records", func(t *testing.T) {
		svc, store, devices := newAuthFixture(t, false)

		user, err := svc.RegisterUser(ctx, deviceID, validSignup())
		require.NoError(t, err)
		require.Equal(t, "uid-1", user.UID)
		require.Equal(t, "provider-token", user.ProviderToken)
		require.Equal(t, "session-token", user.Token)
		require.Equal(t, "Jane", user.Name())

		snap := store.Snapshot(deviceID)
		require.True(t, snap.Auth.Status)
		require.False(t, snap.Auth.Loading)

		mirrored, ok := storage.Token(ctx, devices, deviceID)
		require.True(t, ok)
		require.Equal(t, "session-token", mirrored)

		require.False(t, storage.GuestState(ctx, devices, deviceID))
	})

	t.Run("normalizes the phone before validation", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t, false)
		in := validSignup()
		in.Phone = "12345678"
		_, err := svc.RegisterUser(ctx, deviceID, in)
		require.NoError(t, err)
	})

	t.Run("duplicate email surfaces the friendly message", func(t *testing.T) {
		svc, store, _ := newAuthFixture(t, true)

		_, err := svc.RegisterUser(ctx, deviceID, validSignup())
		require.Error(t, err)
		require.Equal(t, auth.EmailInUseMessage, err.Error())

		snap := store.Snapshot(deviceID)
		require.Equal(t, auth.EmailInUseMessage, snap.Auth.Error)
		require.False(t, snap.Auth.Loading)
	})

	t.Run("validation failures never reach the provider", func(t *testing.T) {
		svc, store, _ := newAuthFixture(t, false)
		in := validSignup()
		in.Terms = false

		_, err := svc.RegisterUser(ctx, deviceID, in)
		var verr *auth.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, "terms", verr.Field)
		require.False(t, store.Snapshot(deviceID).Auth.Status)
	})
}

func TestAuthenticateUser(t *testing.T) {
	ctx := context.Background()
	const deviceID = "device-1"

	t.Run("logs in and mirrors the token", func(t *testing.T) {
		svc, store, devices := newAuthFixture(t, false)

		user, err := svc.AuthenticateUser(ctx, deviceID, "jane@example.com", "Password1!")
		require.NoError(t, err)
		require.Equal(t, "session-token", user.Token)

		require.True(t, store.Snapshot(deviceID).Auth.Status)
		_, ok := storage.Token(ctx, devices, deviceID)
		require.True(t, ok)
	})

	t.Run("empty credentials are rejected locally", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t, false)
		_, err := svc.AuthenticateUser(ctx, deviceID, "", "")
		var verr *auth.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("resolves pending guest bookings at login", func(t *testing.T) {
		svc, store, devices := newAuthFixture(t, false)
		merger := &recordingMerger{}
		svc.Merger = merger

		require.NoError(t, storage.AppendGuestBooking(ctx, devices, deviceID, models.Booking{ID: "g1"}, nil))

		_, err := svc.AuthenticateUser(ctx, deviceID, "jane@example.com", "Password1!")
		require.NoError(t, err)
		require.Equal(t, 1, merger.calls)
		require.Equal(t, "uid-1", merger.lastUID)
		require.True(t, store.Snapshot(deviceID).Auth.Status)
	})
}

type recordingMerger struct {
	calls   int
	lastUID string
}

func (m *recordingMerger) MergeGuestBookings(_ context.Context, _ string, user *models.UserRecord) (int, error) {
	m.calls++
	m.lastUID = user.UID
	return 1, nil
}

func TestVerifyURLToken(t *testing.T) {
	ctx := context.Background()
	const deviceID = "device-1"

	t.Run("exchanges and adopts the session", func(t *testing.T) {
		svc, store, devices := newAuthFixture(t, false)

		profile, err := svc.VerifyURLToken(ctx, deviceID, "url-token")
		require.NoError(t, err)
		require.Equal(t, int64(7), profile.ID)

		mirrored, ok := storage.Token(ctx, devices, deviceID)
		require.True(t, ok)
		require.Equal(t, "session-token", mirrored)
		require.True(t, store.Snapshot(deviceID).Auth.Status)
	})

	t.Run("rejected token leaves the device unauthenticated", func(t *testing.T) {
		svc, store, _ := newAuthFixture(t, false)

		_, err := svc.VerifyURLToken(ctx, deviceID, "bogus")
		require.Error(t, err)
		require.False(t, store.Snapshot(deviceID).Auth.Status)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()
	const deviceID = "device-1"

	t.Run("without a token", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t, false)
		_, err := svc.CurrentUser(ctx, deviceID)
		require.ErrorIs(t, err, auth.ErrNoSession)
	})

	t.Run("refreshes the profile behind a live token", func(t *testing.T) {
		svc, store, _ := newAuthFixture(t, false)
		require.NoError(t, store.SetToken(ctx, deviceID, "session-token"))

		profile, err := svc.CurrentUser(ctx, deviceID)
		require.NoError(t, err)
		require.Equal(t, "Jane", profile.Name)
		require.True(t, store.Snapshot(deviceID).Auth.Status)
	})

	t.Run("rejected token tears the session down", func(t *testing.T) {
		svc, store, devices := newAuthFixture(t, false)
		require.NoError(t, store.SetToken(ctx, deviceID, "revoked-token"))

		_, err := svc.CurrentUser(ctx, deviceID)
		require.Error(t, err)

		_, ok := storage.Token(ctx, devices, deviceID)
		require.False(t, ok)
	})
}

func TestUpdatePassword(t *testing.T) {
	ctx := context.Background()
	const deviceID = "device-1"

	t.Run("weak password is rejected", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t, false)
		err := svc.UpdatePassword(ctx, deviceID, "short")
		var verr *auth.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("refreshes the provider token", func(t *testing.T) {
		svc, store, _ := newAuthFixture(t, false)
		_, err := svc.AuthenticateUser(ctx, deviceID, "jane@example.com", "Password1!")
		require.NoError(t, err)

		require.NoError(t, svc.UpdatePassword(ctx, deviceID, "Password2!"))
		require.Equal(t, "provider-token-2", store.Snapshot(deviceID).Auth.UserData.ProviderToken)
	})

	t.Run("without a session", func(t *testing.T) {
		svc, _, _ := newAuthFixture(t, false)
		err := svc.UpdatePassword(ctx, deviceID, "Password2!")
		require.ErrorIs(t, err, auth.ErrNoSession)
	})
}
