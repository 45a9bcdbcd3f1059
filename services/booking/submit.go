package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tablenow/models"
	"tablenow/services/session"
	"tablenow/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func reservationPath(restaurantID int64) string {
	return fmt.Sprintf("/reservation/%d", restaurantID)
}

func jsonMarshal(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	return json.RawMessage(data), err
}

func (s *DefaultBookingService) Submit(ctx context.Context, deviceID string, input SubmitInput) (*SubmitResult, error) {
	s.mu.Lock()
	reservation, ok := s.reservations[deviceID]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoReservation
	}
	cart := reservation.SelectedMenus.clone()
	details := reservation.Details
	s.mu.Unlock()

	// The confirm control is disabled for an empty cart or missing phone;
	// reject direct invocations too.
	total := TotalPrice(cart)
	if total <= 0 {
		return nil, ErrCartEmpty
	}
	if input.Phone == "" {
		return nil, &FieldError{Field: "phone", Message: "Please enter phone number"}
	}

	snap := s.Store.Snapshot(deviceID)
	user := snap.Auth.UserData

	booking := models.Booking{
		ID:            uuid.New().String(),
		User:          models.GuestUser,
		Restaurant:    details.Restaurant,
		Date:          details.Date,
		Time:          details.Time,
		People:        details.People,
		SelectedMenus: cart,
		TotalPrice:    total + ServiceCharge,
		Name:          input.Name,
		Phone:         input.Phone,
		CreatedAt:     time.Now(),
	}

	destination := models.RouteConfirmation
	if user != nil && user.UID != "" {
		booking.User = user.UID
		booking.Name = user.Name()
		destination = models.RouteProfile
	}

	if booking.User == models.GuestUser {
		// Guest bookings are mirrored to device storage pending account
		// linkage.
		if err := storage.AppendGuestBooking(ctx, s.Devices, deviceID, booking, s.Logger); err != nil {
			s.Logger.Warn("failed to mirror guest booking",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
		if err := storage.SetGuestState(ctx, s.Devices, deviceID, true); err != nil {
			s.Logger.Warn("failed to record guest checkout flag",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
	} else if token, ok := s.Store.Token(ctx, deviceID); ok {
		if err := s.Backend.CreateBooking(ctx, token, booking); err != nil {
			s.Logger.Error("failed to submit booking to backend", zap.Error(err))
			return nil, err
		}
	}

	s.Store.Dispatch(deviceID, func(snap session.Snapshot) session.Snapshot {
		return session.AddBooking(snap, booking)
	})

	// Submission consumes the reservation.
	if _, err := s.take(deviceID); err == nil {
		s.Logger.Debug("reservation submitted", zap.String("deviceID", deviceID),
			zap.String("bookingID", booking.ID), zap.Float64("total", booking.TotalPrice))
	}

	return &SubmitResult{Booking: booking, Destination: destination}, nil
}

// LoginNow persists the pre-login route so the layout guard can resume it,
// clears any pending guest-booking mirror, and routes to login.
func (s *DefaultBookingService) LoginNow(ctx context.Context, deviceID string) (string, error) {
	s.mu.Lock()
	reservation, ok := s.reservations[deviceID]
	var details ReservationDetails
	if ok {
		details = reservation.Details
	}
	s.mu.Unlock()
	if !ok {
		return "", ErrNoReservation
	}

	marker := models.RedirectState{
		FromReservation: true,
		Location:        detailsState(details),
	}
	if err := storage.SaveRedirectMarker(ctx, s.Devices, deviceID, marker); err != nil {
		return "", err
	}
	if err := s.Devices.Delete(ctx, deviceID, storage.KeyGuestBookings); err != nil {
		s.Logger.Warn("failed to clear guest booking mirror",
			zap.String("deviceID", deviceID), zap.Error(err))
	}
	return models.RouteLogin, nil
}
