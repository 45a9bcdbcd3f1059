package feed_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tablenow/backend"
	"tablenow/models"
	"tablenow/services/feed"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Copenhagen-area fixtures: one active nearby, one active further away, one
// pending approval, one deactivated.
var feedRestaurants = []models.Restaurant{
	{ID: 1, Name: "Harbor Bistro", IsApproved: true, Status: "active", Latitude: 55.68, Longitude: 12.57},
	{ID: 2, Name: "Aarhus Grill", IsApproved: true, Status: "active", Latitude: 56.16, Longitude: 10.20},
	{ID: 3, Name: "Pending Place", IsApproved: false, Status: "active", Latitude: 55.68, Longitude: 12.57},
	{ID: 4, Name: "Closed Corner", IsApproved: true, Status: "inactive", Latitude: 55.68, Longitude: 12.57},
}

func newFeedFixture(t *testing.T) (*feed.DefaultFeedService, *int64) {
	t.Helper()
	var hits int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hotels" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt64(&hits, 1)
		_ = json.NewEncoder(w).Encode(feedRestaurants)
	}))
	t.Cleanup(server.Close)

	svc := feed.NewFeedService(backend.NewClient(server.URL, "k"), nil, zap.NewNop())
	return svc, &hits
}

func TestRestaurants(t *testing.T) {
	ctx := context.Background()

	t.Run("filters to approved active entries", func(t *testing.T) {
		svc, _ := newFeedFixture(t)
		got, err := svc.Restaurants(ctx, nil)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, r := range got {
			require.True(t, r.IsApproved)
			require.Equal(t, "active", r.Status)
			require.Zero(t, r.DistanceKm)
		}
	})

	t.Run("ranks by distance from the origin", func(t *testing.T) {
		svc, _ := newFeedFixture(t)
		// Origin near Aarhus, so the Aarhus entry comes first.
		got, err := svc.Restaurants(ctx, &feed.Origin{Latitude: 56.15, Longitude: 10.21})
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Equal(t, int64(2), got[0].ID)
		require.Equal(t, int64(1), got[1].ID)
		require.Less(t, got[0].DistanceKm, got[1].DistanceKm)
	})
}
