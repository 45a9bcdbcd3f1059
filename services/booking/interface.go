package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tablenow/backend"
	"tablenow/models"
	"tablenow/services/session"
	"tablenow/storage"

	"go.uber.org/zap"
)

var (
	// ErrNoReservation signals that the device has no reservation in
	// progress.
	ErrNoReservation = errors.New("booking: no reservation in progress")
	// ErrCartEmpty blocks submission of a reservation without selections.
	ErrCartEmpty = errors.New("booking: cart is empty")
)

// FieldError is a field-level checkout validation failure, shown inline.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReservationDetails is the deep-linked page state a reservation starts
// from.
type ReservationDetails struct {
	Restaurant models.Restaurant `json:"restaurant"`
	Date       string            `json:"date"`
	Time       string            `json:"time"`
	People     int               `json:"people"`
}

// Reservation is the checkout state machine for one device: details, the
// cart, and guest contact fields.
type Reservation struct {
	Details       ReservationDetails `json:"details"`
	SelectedMenus Cart               `json:"selectedMenus"`
	Menus         []models.Menu      `json:"menus"`
	Name          string             `json:"name"`
	Phone         string             `json:"phone"`
}

// Subtotal is the menu total before the service charge.
func (r *Reservation) Subtotal() float64 {
	return TotalPrice(r.SelectedMenus)
}

// Total is the charged total: subtotal plus the fixed service charge.
func (r *Reservation) Total() float64 {
	return r.Subtotal() + ServiceCharge
}

// SubmitInput carries the confirmation form fields.
type SubmitInput struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SubmitResult is the outcome of a confirmed reservation: the created
// booking and the route the client should navigate to.
type SubmitResult struct {
	Booking     models.Booking `json:"booking"`
	Destination string         `json:"destination"`
}

// BookingService drives the reservation checkout flow.
type BookingService interface {
	// StartReservation begins (or restarts) the device's reservation from
	// deep-linked details and loads the restaurant's menu.
	StartReservation(ctx context.Context, deviceID string, details ReservationDetails) (*Reservation, error)
	// Current returns the device's reservation in progress.
	Current(deviceID string) (*Reservation, error)
	// ToggleMenu flips a menu item's cart membership.
	ToggleMenu(deviceID string, menuID int64) (*Reservation, error)
	// AdjustQuantity changes an entry's quantity, clamped at 1.
	AdjustQuantity(deviceID string, menuID int64, increment int) (*Reservation, error)
	// RemoveMenu deletes a cart entry.
	RemoveMenu(deviceID string, menuID int64) (*Reservation, error)
	// Submit confirms the reservation as guest or authenticated user.
	Submit(ctx context.Context, deviceID string, input SubmitInput) (*SubmitResult, error)
	// LoginNow records the redirect marker, clears the guest-booking
	// mirror, and routes to login.
	LoginNow(ctx context.Context, deviceID string) (string, error)
	// MergeGuestBookings resolves the device's pending guest bookings into
	// the authenticated user.
	MergeGuestBookings(ctx context.Context, deviceID string, user *models.UserRecord) (int, error)
}

// DefaultBookingService is the production implementation. Reservations in
// progress are page state and live in memory; only guest bookings are
// mirrored to device storage.
type DefaultBookingService struct {
	mu           sync.Mutex
	reservations map[string]*Reservation

	Backend *backend.Client
	Store   *session.Store
	Devices storage.DeviceStore
	Logger  *zap.Logger
}

// NewBookingService creates the reservation flow service.
func NewBookingService(api *backend.Client, store *session.Store, devices storage.DeviceStore, logger *zap.Logger) *DefaultBookingService {
	return &DefaultBookingService{
		reservations: make(map[string]*Reservation),
		Backend:      api,
		Store:        store,
		Devices:      devices,
		Logger:       logger,
	}
}
