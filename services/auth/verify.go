package auth

import (
	"context"
	"errors"

	"tablenow/models"
	"tablenow/services/session"
	"tablenow/utils"

	"go.uber.org/zap"
)

// VerifyURLToken handles a token arriving as a URL query parameter: it is
// exchanged for a backend session token, mirrored to the single token slot,
// and the profile behind it is fetched.
func (s *DefaultAuthService) VerifyURLToken(ctx context.Context, deviceID, token string) (*models.Profile, error) {
	sessionToken, err := s.Backend.VerifyToken(ctx, token)
	if err != nil {
		s.Logger.Error("url token verification failed", zap.Error(err))
		return nil, err
	}

	if err := s.Store.SetToken(ctx, deviceID, sessionToken); err != nil {
		s.Logger.Warn("failed to mirror verified token",
			zap.String("deviceID", deviceID), zap.Error(err))
	}

	profile, err := s.Backend.VerifyUser(ctx, sessionToken)
	if err != nil {
		return nil, err
	}

	s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
		return session.Login(snap, &models.UserRecord{
			Email:   profile.Email,
			Token:   sessionToken,
			Profile: profile,
		})
	})
	return profile, nil
}

// CurrentUser fetches the profile behind the device's session token. A
// rejected or expired token tears the session down, so an unauthenticated
// result and a backend failure converge on logout.
func (s *DefaultAuthService) CurrentUser(ctx context.Context, deviceID string) (*models.Profile, error) {
	token, ok := s.Store.Token(ctx, deviceID)
	if !ok {
		return nil, ErrNoSession
	}
	if utils.TokenExpired(token) {
		s.Store.Logout(ctx, deviceID)
		return nil, ErrNoSession
	}

	profile, err := s.Backend.VerifyUser(ctx, token)
	if err != nil {
		s.Logger.Error("verify-user failed, clearing session", zap.Error(err))
		s.Store.Logout(ctx, deviceID)
		return nil, err
	}

	s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
		if snap.Auth.UserData == nil {
			return session.Login(snap, &models.UserRecord{
				Email:   profile.Email,
				Token:   token,
				Profile: profile,
			})
		}
		user := *snap.Auth.UserData
		user.Profile = profile
		snap.Auth.UserData = &user
		return snap
	})
	return profile, nil
}

// UpdatePassword changes the provider password behind the current session's
// provider token.
func (s *DefaultAuthService) UpdatePassword(ctx context.Context, deviceID, newPassword string) error {
	if !StrongPassword(newPassword) {
		return &ValidationError{
			Field:   "newPassword",
			Message: "Password must be at least 8 characters long and include uppercase, lowercase, number, and special character.",
		}
	}

	snap := s.Store.Snapshot(deviceID)
	if snap.Auth.UserData == nil || snap.Auth.UserData.ProviderToken == "" {
		return ErrNoSession
	}

	refreshed, err := s.Provider.UpdatePassword(ctx, snap.Auth.UserData.ProviderToken, newPassword)
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) {
			return &ValidationError{Field: "newPassword", Message: friendlyProviderMessage(perr)}
		}
		return err
	}

	s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
		if snap.Auth.UserData == nil {
			return snap
		}
		user := *snap.Auth.UserData
		user.ProviderToken = refreshed
		snap.Auth.UserData = &user
		return snap
	})
	return nil
}
