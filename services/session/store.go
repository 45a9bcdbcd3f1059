package session

import (
	"context"
	"sync"

	"tablenow/models"
	"tablenow/storage"

	"go.uber.org/zap"
)

// Store holds the authoritative in-memory snapshot per device and mirrors
// the session token to device storage. It is the single writer of the
// webToken slot. Concurrent dispatches are serialized; the last write wins.
type Store struct {
	mu      sync.Mutex
	devices map[string]Snapshot

	Devices storage.DeviceStore
	Logger  *zap.Logger
}

// NewStore creates a session store backed by the given device storage.
func NewStore(devices storage.DeviceStore, logger *zap.Logger) *Store {
	return &Store{
		devices: make(map[string]Snapshot),
		Devices: devices,
		Logger:  logger,
	}
}

// Snapshot returns the current snapshot for a device.
func (s *Store) Snapshot(deviceID string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devices[deviceID]
}

// Dispatch applies a transition to the device's snapshot and returns the
// result.
func (s *Store) Dispatch(deviceID string, transition func(Snapshot) Snapshot) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := transition(s.devices[deviceID])
	s.devices[deviceID] = next
	return next
}

// CompleteAuth records a successful signup/login and mirrors the backend
// session token to the device token slot.
func (s *Store) CompleteAuth(ctx context.Context, deviceID string, user *models.UserRecord) Snapshot {
	next := s.Dispatch(deviceID, func(snap Snapshot) Snapshot {
		return AuthFulfilled(snap, user)
	})
	if user != nil && user.Token != "" {
		if err := s.Devices.Set(ctx, deviceID, storage.KeyWebToken, user.Token); err != nil {
			s.Logger.Warn("failed to mirror session token",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
	}
	return next
}

// SetToken mirrors an externally issued session token (URL-token exchange)
// to the device token slot.
func (s *Store) SetToken(ctx context.Context, deviceID, token string) error {
	return s.Devices.Set(ctx, deviceID, storage.KeyWebToken, token)
}

// Token returns the mirrored session token for a device, preferring the
// in-memory user record over the storage mirror.
func (s *Store) Token(ctx context.Context, deviceID string) (string, bool) {
	snap := s.Snapshot(deviceID)
	if snap.Auth.UserData != nil && snap.Auth.UserData.Token != "" {
		return snap.Auth.UserData.Token, true
	}
	return storage.Token(ctx, s.Devices, deviceID)
}

// Logout tears the session down: store reset plus token-slot removal.
// Idempotent; it always clears both regardless of prior state.
func (s *Store) Logout(ctx context.Context, deviceID string) Snapshot {
	s.mu.Lock()
	delete(s.devices, deviceID)
	s.mu.Unlock()

	if err := s.Devices.Delete(ctx, deviceID, storage.KeyWebToken); err != nil {
		s.Logger.Warn("failed to clear session token",
			zap.String("deviceID", deviceID), zap.Error(err))
	}
	return Snapshot{}
}
