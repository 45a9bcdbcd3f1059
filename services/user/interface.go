// Package user covers the authenticated account surface: profile updates,
// profile image uploads, booking history, favorites, ratings, and account
// deletion.
package user

import (
	"context"
	"errors"

	"tablenow/backend"
	"tablenow/models"
	"tablenow/services/media"
	"tablenow/services/session"
	"tablenow/storage"

	"go.uber.org/zap"
)

// ErrNoSession signals that the device has no authenticated session.
var ErrNoSession = errors.New("user: no authenticated session")

// UserService drives the account surface for an authenticated device.
type UserService interface {
	// UpdateProfile applies a partial profile update and folds the
	// refreshed profile into the session.
	UpdateProfile(ctx context.Context, deviceID string, patch models.ProfilePatch) (*models.Profile, error)
	// UploadProfileImage uploads a new profile image and applies it as a
	// profile update.
	UploadProfileImage(ctx context.Context, deviceID, localFilePath string) (*models.Profile, error)
	// BookingHistory returns the user's past and upcoming bookings.
	BookingHistory(ctx context.Context, deviceID string) ([]models.HistoryBooking, error)
	// CancelBooking clears a single booking and returns the backend's
	// confirmation message.
	CancelBooking(ctx context.Context, deviceID string, bookingID int64) (string, error)
	// CancelAllBookings clears the entire booking history.
	CancelAllBookings(ctx context.Context, deviceID string) error
	// RateBooking submits a review for an eligible past booking.
	RateBooking(ctx context.Context, deviceID string, rating models.Rating) error
	// Favorites returns the user's favorited restaurants.
	Favorites(ctx context.Context, deviceID string) ([]models.Favorite, error)
	// DeleteAccount removes the account and wipes all device state.
	DeleteAccount(ctx context.Context, deviceID string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Backend *backend.Client
	Store   *session.Store
	Devices storage.DeviceStore
	Media   media.MediaService
	Logger  *zap.Logger
}

// NewUserService creates the account service.
func NewUserService(api *backend.Client, store *session.Store, devices storage.DeviceStore, mediaSvc media.MediaService, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{
		Backend: api,
		Store:   store,
		Devices: devices,
		Media:   mediaSvc,
		Logger:  logger,
	}
}

// requireSession returns the session token and user record, or ErrNoSession.
func (s *DefaultUserService) requireSession(ctx context.Context, deviceID string) (string, *models.UserRecord, error) {
	token, ok := s.Store.Token(ctx, deviceID)
	if !ok {
		return "", nil, ErrNoSession
	}
	snap := s.Store.Snapshot(deviceID)
	if snap.Auth.UserData == nil {
		return "", nil, ErrNoSession
	}
	return token, snap.Auth.UserData, nil
}
