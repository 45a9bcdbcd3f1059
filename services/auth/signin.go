package auth

import (
	"context"

	"tablenow/models"
	"tablenow/services/session"
	"tablenow/storage"

	"go.uber.org/zap"
)

func (s *DefaultAuthService) AuthenticateUser(ctx context.Context, deviceID, email, password string) (*models.UserRecord, error) {
	if email == "" || password == "" {
		return nil, &ValidationError{Field: "email", Message: "Email and password are required"}
	}

	s.Store.Dispatch(deviceID, session.AuthPending)

	providerUser, err := s.Provider.SignIn(ctx, email, password)
	if err != nil {
		return nil, s.rejectAuth(deviceID, err)
	}

	if err := s.verifyProviderToken(ctx, providerUser); err != nil {
		return nil, s.rejectAuth(deviceID, err)
	}

	exchange, err := s.Backend.Login(ctx, providerUser.IDToken)
	if err != nil {
		s.Logger.Error("login: backend exchange failed", zap.Error(err))
		return nil, s.rejectAuth(deviceID, err)
	}

	user := unifyRecord(providerUser, exchange.Token, exchange.User)
	s.completeLogin(ctx, deviceID, user)
	return user, nil
}

func (s *DefaultAuthService) Logout(ctx context.Context, deviceID string) error {
	s.Store.Logout(ctx, deviceID)
	return nil
}

// unifyRecord merges the provider identity with the backend-issued token and
// profile into the single authoritative user record.
func unifyRecord(providerUser *ProviderUser, token string, profile *models.Profile) *models.UserRecord {
	return &models.UserRecord{
		UID:           providerUser.UID,
		Email:         providerUser.Email,
		DisplayName:   providerUser.DisplayName,
		ProviderToken: providerUser.IDToken,
		Token:         token,
		Profile:       profile,
	}
}

// completeLogin commits the session and resolves the device's pending guest
// bookings into the authenticated user.
func (s *DefaultAuthService) completeLogin(ctx context.Context, deviceID string, user *models.UserRecord) {
	s.Store.CompleteAuth(ctx, deviceID, user)

	if err := storage.SetGuestState(ctx, s.Store.Devices, deviceID, false); err != nil {
		s.Logger.Warn("failed to clear guest checkout flag",
			zap.String("deviceID", deviceID), zap.Error(err))
	}

	if s.Merger == nil {
		return
	}
	merged, err := s.Merger.MergeGuestBookings(ctx, deviceID, user)
	if err != nil {
		s.Logger.Warn("guest booking merge failed",
			zap.String("deviceID", deviceID), zap.Error(err))
		return
	}
	if merged > 0 {
		s.Logger.Info("merged guest bookings into account",
			zap.String("uid", user.UID), zap.Int("count", merged))
	}
}
