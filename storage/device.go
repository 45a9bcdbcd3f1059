// Package storage is the device-scoped key-value layer standing in for the
// client's local storage. It is a best-effort mirror of session state, not a
// source of truth: flows must survive missing or malformed entries.
package storage

import (
	"context"
	"errors"
)

// Storage keys per device. WebToken is the single authoritative session-token
// slot; the session store is its only writer.
const (
	KeyWebToken      = "webToken"
	KeyRedirectState = "redirectState"
	KeyGuestState    = "guestState"
	KeyGuestBookings = "guestBookings"
)

// ErrNotFound is returned when a device key has no value.
var ErrNotFound = errors.New("storage: key not found")

// DeviceStore is per-device key-value storage.
type DeviceStore interface {
	Get(ctx context.Context, deviceID, key string) (string, error)
	Set(ctx context.Context, deviceID, key, value string) error
	Delete(ctx context.Context, deviceID, key string) error
	// Clear removes every known key for the device.
	Clear(ctx context.Context, deviceID string) error
}

// knownKeys is the persisted state layout cleared by Clear.
var knownKeys = []string{KeyWebToken, KeyRedirectState, KeyGuestState, KeyGuestBookings}
