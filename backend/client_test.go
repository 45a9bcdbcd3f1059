package backend_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablenow/backend"
	"tablenow/models"

	"github.com/stretchr/testify/require"
)

func TestClientRequestShape(t *testing.T) {
	var (
		gotPath   string
		gotAPIKey string
		gotAuth   string
		gotBody   map[string]any
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.URL.Query().Get("api_key")
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, "secret-key")
	err := client.CreateBooking(context.Background(), "session-token", models.Booking{ID: "b1"})
	require.NoError(t, err)

	require.Equal(t, "/table-booking", gotPath)
	require.Equal(t, "secret-key", gotAPIKey)
	require.Equal(t, "Bearer session-token", gotAuth)
	require.Equal(t, "b1", gotBody["id"])
}

func TestClientErrorMapping(t *testing.T) {
	t.Run("message field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Unauthorized"})
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, "k")
		_, err := client.ListBookings(context.Background(), "tok")

		var apiErr *backend.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
		require.Equal(t, "Unauthorized", apiErr.Message)
	})

	t.Run("error field", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid date"})
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, "k")
		_, err := client.ListBookings(context.Background(), "tok")

		var apiErr *backend.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "Invalid date", apiErr.Message)
	})

	t.Run("non-json body falls back to raw text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Bad Gateway", http.StatusBadGateway)
		}))
		defer server.Close()

		client := backend.NewClient(server.URL, "k")
		_, err := client.ListRestaurants(context.Background())

		var apiErr *backend.APIError
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, "Bad Gateway", apiErr.Message)
	})
}

func TestVerifyTokenQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/verify-token", r.URL.Path)
		require.Equal(t, "url-tok", r.URL.Query().Get("token"))
		require.Equal(t, "k", r.URL.Query().Get("api_key"))
		_ = json.NewEncoder(w).Encode(map[string]string{"token": "session-tok"})
	}))
	defer server.Close()

	client := backend.NewClient(server.URL, "k")
	token, err := client.VerifyToken(context.Background(), "url-tok")
	require.NoError(t, err)
	require.Equal(t, "session-tok", token)
}
