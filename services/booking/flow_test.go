package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"tablenow/backend"
	"tablenow/models"
	"tablenow/services/booking"
	"tablenow/services/session"
	"tablenow/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBackend serves the menu endpoint and records booking submissions.
type fakeBackend struct {
	server      *httptest.Server
	createCalls int64
	failCreate  atomic.Bool
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/hotel-menus/1":
			_ = json.NewEncoder(w).Encode([]models.Menu{
				{ID: 1, Name: "Pasta", Price: 100},
				{ID: 2, Name: "Wine", Price: 50},
			})
		case "/table-booking":
			if fb.failCreate.Load() {
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"message": "unavailable"})
				return
			}
			atomic.AddInt64(&fb.createCalls, 1)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func newFlowFixture(t *testing.T) (*booking.DefaultBookingService, *session.Store, *storage.MemoryDeviceStore, *fakeBackend) {
	t.Helper()
	fb := newFakeBackend(t)
	devices := storage.NewMemoryDeviceStore()
	store := session.NewStore(devices, zap.NewNop())
	client := backend.NewClient(fb.server.URL, "test-key")
	svc := booking.NewBookingService(client, store, devices, zap.NewNop())
	return svc, store, devices, fb
}

func startReservation(t *testing.T, svc *booking.DefaultBookingService, deviceID string) {
	t.Helper()
	_, err := svc.StartReservation(context.Background(), deviceID, booking.ReservationDetails{
		Restaurant: models.Restaurant{ID: 1, Name: "Noma"},
		Date:       "2026-09-12",
		Time:       "18:00",
		People:     2,
	})
	require.NoError(t, err)
}

func TestGuestSubmit(t *testing.T) {
	svc, store, devices, fb := newFlowFixture(t)
	ctx := context.Background()
	const deviceID = "device-1"

	startReservation(t, svc, deviceID)

	_, err := svc.ToggleMenu(deviceID, 1)
	require.NoError(t, err)
	_, err = svc.AdjustQuantity(deviceID, 1, 1)
	require.NoError(t, err)
	_, err = svc.ToggleMenu(deviceID, 2)
	require.NoError(t, err)

	t.Run("missing phone is rejected", func(t *testing.T) {
		_, err := svc.Submit(ctx, deviceID, booking.SubmitInput{Name: "Jane"})
		var fieldErr *booking.FieldError
		require.ErrorAs(t, err, &fieldErr)
		require.Equal(t, "phone", fieldErr.Field)
		require.Equal(t, "Please enter phone number", fieldErr.Message)
	})

	t.Run("guest submission mirrors locally", func(t *testing.T) {
		result, err := svc.Submit(ctx, deviceID, booking.SubmitInput{Name: "Jane", Phone: "+45 12 34 56 78"})
		require.NoError(t, err)

		require.Equal(t, models.GuestUser, result.Booking.User)
		require.Equal(t, 400.0, result.Booking.TotalPrice)
		require.Equal(t, models.RouteConfirmation, result.Destination)

		mirrored := storage.GuestBookings(ctx, devices, deviceID, nil)
		require.Len(t, mirrored, 1)
		require.Equal(t, int64(0), atomic.LoadInt64(&fb.createCalls))

		require.True(t, storage.GuestState(ctx, devices, deviceID))

		snap := store.Snapshot(deviceID)
		require.Len(t, snap.Bookings, 1)
	})

	t.Run("submission consumes the reservation", func(t *testing.T) {
		_, err := svc.Submit(ctx, deviceID, booking.SubmitInput{Name: "Jane", Phone: "+45 12 34 56 78"})
		require.ErrorIs(t, err, booking.ErrNoReservation)
	})
}

func TestSubmitEmptyCart(t *testing.T) {
	svc, _, _, _ := newFlowFixture(t)
	startReservation(t, svc, "device-1")

	_, err := svc.Submit(context.Background(), "device-1", booking.SubmitInput{Phone: "+45 12 34 56 78"})
	require.ErrorIs(t, err, booking.ErrCartEmpty)
}

func TestAuthenticatedSubmit(t *testing.T) {
	svc, store, _, fb := newFlowFixture(t)
	ctx := context.Background()
	const deviceID = "device-1"

	store.CompleteAuth(ctx, deviceID, &models.UserRecord{
		UID:         "uid-7",
		Token:       "session-token",
		DisplayName: "Jane",
	})

	startReservation(t, svc, deviceID)
	_, err := svc.ToggleMenu(deviceID, 1)
	require.NoError(t, err)

	result, err := svc.Submit(ctx, deviceID, booking.SubmitInput{Phone: "+45 12 34 56 78"})
	require.NoError(t, err)

	require.Equal(t, "uid-7", result.Booking.User)
	require.Equal(t, "Jane", result.Booking.Name)
	require.Equal(t, models.RouteProfile, result.Destination)
	require.Equal(t, int64(1), atomic.LoadInt64(&fb.createCalls))
}

func TestLoginNow(t *testing.T) {
	svc, _, devices, _ := newFlowFixture(t)
	ctx := context.Background()
	const deviceID = "device-1"

	require.NoError(t, storage.AppendGuestBooking(ctx, devices, deviceID, models.Booking{ID: "g1"}, nil))
	startReservation(t, svc, deviceID)

	destination, err := svc.LoginNow(ctx, deviceID)
	require.NoError(t, err)
	require.Equal(t, models.RouteLogin, destination)

	marker, ok := storage.RedirectMarker(ctx, devices, deviceID, nil)
	require.True(t, ok)
	require.True(t, marker.FromReservation)
	require.Equal(t, "/reservation/1", marker.Location.Pathname)

	require.Empty(t, storage.GuestBookings(ctx, devices, deviceID, nil))
}

func TestMergeGuestBookings(t *testing.T) {
	ctx := context.Background()
	const deviceID = "device-1"
	user := &models.UserRecord{UID: "uid-7", Token: "session-token", DisplayName: "Jane"}

	t.Run("merges and consumes the mirror", func(t *testing.T) {
		svc, store, devices, fb := newFlowFixture(t)
		store.CompleteAuth(ctx, deviceID, user)
		require.NoError(t, storage.AppendGuestBooking(ctx, devices, deviceID, models.Booking{ID: "g1", User: models.GuestUser}, nil))
		require.NoError(t, storage.AppendGuestBooking(ctx, devices, deviceID, models.Booking{ID: "g2", User: models.GuestUser}, nil))

		merged, err := svc.MergeGuestBookings(ctx, deviceID, user)
		require.NoError(t, err)
		require.Equal(t, 2, merged)
		require.Equal(t, int64(2), atomic.LoadInt64(&fb.createCalls))
		require.Empty(t, storage.GuestBookings(ctx, devices, deviceID, nil))

		snap := store.Snapshot(deviceID)
		require.Len(t, snap.Bookings, 2)
		for _, b := range snap.Bookings {
			require.Equal(t, "uid-7", b.User)
			require.Equal(t, "Jane", b.Name)
		}
	})

	t.Run("requeues bookings the backend rejects", func(t *testing.T) {
		svc, store, devices, fb := newFlowFixture(t)
		fb.failCreate.Store(true)
		store.CompleteAuth(ctx, deviceID, user)
		require.NoError(t, storage.AppendGuestBooking(ctx, devices, deviceID, models.Booking{ID: "g1", User: models.GuestUser}, nil))

		merged, err := svc.MergeGuestBookings(ctx, deviceID, user)
		require.Error(t, err)
		require.Zero(t, merged)
		require.Len(t, storage.GuestBookings(ctx, devices, deviceID, nil), 1)
	})

	t.Run("no-op without pending bookings", func(t *testing.T) {
		svc, _, _, _ := newFlowFixture(t)
		merged, err := svc.MergeGuestBookings(ctx, deviceID, user)
		require.NoError(t, err)
		require.Zero(t, merged)
	})
}
