package handlers

import (
	"tablenow/navigation"
	"tablenow/services/auth"
	"tablenow/services/booking"
	"tablenow/services/feed"
	"tablenow/services/user"
	"tablenow/utils"
)

// HandlerBundle groups all endpoint handlers into one struct for route
// registration.
type HandlerBundle struct {
	Auth         *AuthHandler
	Layout       *LayoutHandler
	Users        *UserHandler
	Feed         *FeedHandler
	Reservations *ReservationHandler
}

// NewHandlerBundle wires the handlers over the given services. One inflight
// registry is shared so supersession keys span handler types.
func NewHandlerBundle(
	authSvc auth.AuthService,
	userSvc user.UserService,
	feedSvc feed.FeedService,
	bookingSvc booking.BookingService,
	guard *navigation.Guard,
) *HandlerBundle {
	inflight := utils.NewInflightRegistry()
	return &HandlerBundle{
		Auth:         &AuthHandler{Auth: authSvc},
		Layout:       &LayoutHandler{Auth: authSvc, Guard: guard},
		Users:        &UserHandler{Users: userSvc, Inflight: inflight},
		Feed:         &FeedHandler{Feed: feedSvc},
		Reservations: &ReservationHandler{Bookings: bookingSvc, Inflight: inflight},
	}
}
