package storage

import (
	"context"
	"encoding/json"
	"strconv"

	"tablenow/models"

	"go.uber.org/zap"
)

// Typed accessors over the device key layout. Parse failures never escape:
// a corrupt entry degrades to "absent" so flows fall back to default routing.

// Token returns the mirrored session token for the device, if any.
func Token(ctx context.Context, store DeviceStore, deviceID string) (string, bool) {
	val, err := store.Get(ctx, deviceID, KeyWebToken)
	if err != nil || val == "" {
		return "", false
	}
	return val, true
}

// RedirectMarker returns the stored redirect-after-login marker, if present
// and well-formed.
func RedirectMarker(ctx context.Context, store DeviceStore, deviceID string, logger *zap.Logger) (*models.RedirectState, bool) {
	val, err := store.Get(ctx, deviceID, KeyRedirectState)
	if err != nil {
		return nil, false
	}
	var marker models.RedirectState
	if err := json.Unmarshal([]byte(val), &marker); err != nil {
		if logger != nil {
			logger.Warn("discarding malformed redirect marker",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
		return nil, false
	}
	return &marker, true
}

// SaveRedirectMarker persists the redirect-after-login marker.
func SaveRedirectMarker(ctx context.Context, store DeviceStore, deviceID string, marker models.RedirectState) error {
	data, err := json.Marshal(marker)
	if err != nil {
		return err
	}
	return store.Set(ctx, deviceID, KeyRedirectState, string(data))
}

// GuestBookings returns the mirrored guest-booking list for the device.
// Missing or malformed entries yield an empty list.
func GuestBookings(ctx context.Context, store DeviceStore, deviceID string, logger *zap.Logger) []models.Booking {
	val, err := store.Get(ctx, deviceID, KeyGuestBookings)
	if err != nil {
		return nil
	}
	var bookings []models.Booking
	if err := json.Unmarshal([]byte(val), &bookings); err != nil {
		if logger != nil {
			logger.Warn("discarding malformed guest bookings",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
		return nil
	}
	return bookings
}

// AppendGuestBooking adds a booking to the device's guest-booking mirror.
func AppendGuestBooking(ctx context.Context, store DeviceStore, deviceID string, booking models.Booking, logger *zap.Logger) error {
	bookings := append(GuestBookings(ctx, store, deviceID, logger), booking)
	data, err := json.Marshal(bookings)
	if err != nil {
		return err
	}
	return store.Set(ctx, deviceID, KeyGuestBookings, string(data))
}

// GuestState reports whether the device opted into the guest checkout path.
// The flag defaults to true, matching a fresh client.
func GuestState(ctx context.Context, store DeviceStore, deviceID string) bool {
	val, err := store.Get(ctx, deviceID, KeyGuestState)
	if err != nil {
		return true
	}
	guest, err := strconv.ParseBool(val)
	if err != nil {
		return true
	}
	return guest
}

// SetGuestState persists the guest checkout flag.
func SetGuestState(ctx context.Context, store DeviceStore, deviceID string, guest bool) error {
	return store.Set(ctx, deviceID, KeyGuestState, strconv.FormatBool(guest))
}
