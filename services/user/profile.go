package user

import (
	"context"
	"errors"

	"tablenow/models"
	"tablenow/services/session"

	"go.uber.org/zap"
)

// UpdateProfile applies a partial update to the backend profile and merges
// the result into the session snapshot.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, deviceID string, patch models.ProfilePatch) (*models.Profile, error) {
	token, userData, err := s.requireSession(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	var userID int64
	if userData.Profile != nil {
		userID = userData.Profile.ID
	}

	profile, err := s.Backend.UpdateProfile(ctx, token, userID, patch)
	if err != nil {
		s.Logger.Error("failed to update profile",
			zap.String("deviceID", deviceID), zap.Error(err))
		return nil, err
	}

	// A superseded request must not land its write.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
		next := session.UpdateUserData(snap, patch)
		if next.Auth.UserData == nil {
			return next
		}
		// The backend's response is authoritative over the local merge.
		record := *next.Auth.UserData
		record.Profile = profile
		next.Auth.UserData = &record
		return next
	})

	return profile, nil
}

// UploadProfileImage uploads the image and applies its delivery URL as a
// profile update.
func (s *DefaultUserService) UploadProfileImage(ctx context.Context, deviceID, localFilePath string) (*models.Profile, error) {
	if _, _, err := s.requireSession(ctx, deviceID); err != nil {
		return nil, err
	}
	if s.Media == nil {
		return nil, errors.New("user: image uploads are not configured")
	}

	imageURL, err := s.Media.UploadProfileImage(ctx, localFilePath)
	if err != nil {
		return nil, err
	}

	return s.UpdateProfile(ctx, deviceID, models.ProfilePatch{ProfileImage: &imageURL})
}

// DeleteAccount removes the backend account, tears down the session, and
// wipes every device-scoped key.
func (s *DefaultUserService) DeleteAccount(ctx context.Context, deviceID string) error {
	token, _, err := s.requireSession(ctx, deviceID)
	if err != nil {
		return err
	}

	if err := s.Backend.DeleteAccount(ctx, token); err != nil {
		s.Logger.Error("failed to delete account",
			zap.String("deviceID", deviceID), zap.Error(err))
		return err
	}

	s.Store.Logout(ctx, deviceID)
	if err := s.Devices.Clear(ctx, deviceID); err != nil {
		s.Logger.Warn("failed to wipe device storage after account deletion",
			zap.String("deviceID", deviceID), zap.Error(err))
	}
	return nil
}
