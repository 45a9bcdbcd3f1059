package booking

import (
	"context"
	"encoding/json"

	"tablenow/models"
	"tablenow/services/session"
	"tablenow/storage"

	"go.uber.org/zap"
)

// MergeGuestBookings resolves the device's pending guest bookings into the
// newly authenticated user: each booking is re-keyed to the user, pushed to
// the backend, and folded into the session booking slice. The mirror is
// consumed; bookings the backend rejects stay queued for the next login.
func (s *DefaultBookingService) MergeGuestBookings(ctx context.Context, deviceID string, user *models.UserRecord) (int, error) {
	if user == nil || user.UID == "" {
		return 0, nil
	}

	pending := storage.GuestBookings(ctx, s.Devices, deviceID, s.Logger)
	if len(pending) == 0 {
		return 0, nil
	}

	token, _ := s.Store.Token(ctx, deviceID)

	var (
		merged    int
		remainder []models.Booking
		firstErr  error
	)
	for _, guestBooking := range pending {
		booking := guestBooking
		booking.User = user.UID
		if booking.Name == "" {
			booking.Name = user.Name()
		}

		if token != "" {
			if err := s.Backend.CreateBooking(ctx, token, booking); err != nil {
				if firstErr == nil {
					firstErr = err
				}
				remainder = append(remainder, guestBooking)
				continue
			}
		}

		s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
			return session.AddBooking(snap, booking)
		})
		merged++
	}

	if len(remainder) == 0 {
		if err := s.Devices.Delete(ctx, deviceID, storage.KeyGuestBookings); err != nil {
			s.Logger.Warn("failed to consume guest booking mirror",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
	} else {
		data, err := json.Marshal(remainder)
		if err == nil {
			err = s.Devices.Set(ctx, deviceID, storage.KeyGuestBookings, string(data))
		}
		if err != nil {
			s.Logger.Warn("failed to requeue unmerged guest bookings",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
	}

	return merged, firstErr
}
