package user

import (
	"context"

	"tablenow/models"
	"tablenow/services/session"

	"go.uber.org/zap"
)

// BookingHistory returns the backend's booking list for the user.
func (s *DefaultUserService) BookingHistory(ctx context.Context, deviceID string) ([]models.HistoryBooking, error) {
	token, _, err := s.requireSession(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return s.Backend.ListBookings(ctx, token)
}

// CancelBooking clears one booking and surfaces the backend's confirmation
// message as a notification.
func (s *DefaultUserService) CancelBooking(ctx context.Context, deviceID string, bookingID int64) (string, error) {
	token, _, err := s.requireSession(ctx, deviceID)
	if err != nil {
		return "", err
	}

	message, err := s.Backend.DeleteBooking(ctx, token, bookingID)
	if err != nil {
		s.Logger.Error("failed to cancel booking",
			zap.Int64("bookingID", bookingID), zap.Error(err))
		return "", err
	}

	s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
		return session.SetNotification(snap, message)
	})
	return message, nil
}

// CancelAllBookings clears the whole history and the session booking slice.
func (s *DefaultUserService) CancelAllBookings(ctx context.Context, deviceID string) error {
	token, _, err := s.requireSession(ctx, deviceID)
	if err != nil {
		return err
	}

	if err := s.Backend.DeleteAllBookings(ctx, token); err != nil {
		s.Logger.Error("failed to cancel all bookings", zap.Error(err))
		return err
	}

	s.Store.Dispatch(deviceID, session.ClearBookings)
	return nil
}

// RateBooking submits a review for a past booking on behalf of the current
// user.
func (s *DefaultUserService) RateBooking(ctx context.Context, deviceID string, rating models.Rating) error {
	token, userData, err := s.requireSession(ctx, deviceID)
	if err != nil {
		return err
	}
	if userData.Profile != nil {
		rating.UserID = userData.Profile.ID
	}
	return s.Backend.SubmitRating(ctx, token, rating)
}

// Favorites returns the user's favorited restaurants.
func (s *DefaultUserService) Favorites(ctx context.Context, deviceID string) ([]models.Favorite, error) {
	token, _, err := s.requireSession(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return s.Backend.ListFavorites(ctx, token)
}
