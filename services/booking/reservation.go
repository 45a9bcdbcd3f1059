package booking

import (
	"context"

	"tablenow/models"

	"go.uber.org/zap"
)

func (s *DefaultBookingService) StartReservation(ctx context.Context, deviceID string, details ReservationDetails) (*Reservation, error) {
	if details.Restaurant.ID == 0 || details.Date == "" || details.Time == "" || details.People == 0 {
		return nil, &FieldError{Field: "details", Message: "restaurant, date, time and party size are required"}
	}

	menus, err := s.Backend.ListMenus(ctx, details.Restaurant.ID)
	if err != nil {
		s.Logger.Error("failed to load restaurant menus",
			zap.Int64("restaurantID", details.Restaurant.ID), zap.Error(err))
		return nil, err
	}

	reservation := &Reservation{
		Details:       details,
		SelectedMenus: Cart{},
		Menus:         menus,
	}

	s.mu.Lock()
	s.reservations[deviceID] = reservation
	s.mu.Unlock()

	return s.view(reservation), nil
}

func (s *DefaultBookingService) Current(deviceID string) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[deviceID]
	if !ok {
		return nil, ErrNoReservation
	}
	return s.view(reservation), nil
}

// mutate applies fn to the device's reservation under the lock and returns a
// copy.
func (s *DefaultBookingService) mutate(deviceID string, fn func(*Reservation)) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[deviceID]
	if !ok {
		return nil, ErrNoReservation
	}
	fn(reservation)
	return s.view(reservation), nil
}

// view returns a copy so callers never share the guarded state.
func (s *DefaultBookingService) view(r *Reservation) *Reservation {
	copied := *r
	copied.SelectedMenus = r.SelectedMenus.clone()
	return &copied
}

func (s *DefaultBookingService) ToggleMenu(deviceID string, menuID int64) (*Reservation, error) {
	return s.mutate(deviceID, func(r *Reservation) {
		for _, menu := range r.Menus {
			if menu.ID == menuID {
				r.SelectedMenus = Toggle(r.SelectedMenus, menu)
				return
			}
		}
	})
}

func (s *DefaultBookingService) AdjustQuantity(deviceID string, menuID int64, increment int) (*Reservation, error) {
	return s.mutate(deviceID, func(r *Reservation) {
		r.SelectedMenus = AdjustQuantity(r.SelectedMenus, menuID, increment)
	})
}

func (s *DefaultBookingService) RemoveMenu(deviceID string, menuID int64) (*Reservation, error) {
	return s.mutate(deviceID, func(r *Reservation) {
		r.SelectedMenus = Remove(r.SelectedMenus, menuID)
	})
}

// take removes and returns the device's reservation.
func (s *DefaultBookingService) take(deviceID string) (*Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	reservation, ok := s.reservations[deviceID]
	if !ok {
		return nil, ErrNoReservation
	}
	delete(s.reservations, deviceID)
	return reservation, nil
}

// detailsState re-encodes reservation details as deep-link page state.
func detailsState(details ReservationDetails) models.RouteLocation {
	state, _ := jsonMarshal(details)
	return models.RouteLocation{
		Pathname: reservationPath(details.Restaurant.ID),
		State:    state,
	}
}
