// Package session is the client-side state container: per-device snapshots
// of auth, booking, and notification state, mutated only through pure
// transition functions applied by the Store.
package session

import "tablenow/models"

// AuthState mirrors the auth slice: logged-in flag, current user, and the
// lifecycle of the in-flight auth operation.
type AuthState struct {
	Status   bool
	UserData *models.UserRecord
	Loading  bool
	Error    string
}

// Snapshot is one device's full client state. Snapshots are immutable;
// transitions return a new value.
type Snapshot struct {
	Auth         AuthState
	Bookings     []models.Booking
	Notification string
}

// Login marks the session authenticated with the given user record.
func Login(s Snapshot, user *models.UserRecord) Snapshot {
	s.Auth.Status = true
	s.Auth.UserData = user
	return s
}

// Logout resets the auth slice. Applying it to an already logged-out
// snapshot is a no-op.
func Logout(s Snapshot) Snapshot {
	s.Auth = AuthState{}
	return s
}

// UpdateUserData shallow-merges a profile patch into the current user.
// Without a current user it is a no-op.
func UpdateUserData(s Snapshot, patch models.ProfilePatch) Snapshot {
	if s.Auth.UserData == nil {
		return s
	}
	user := *s.Auth.UserData
	var profile models.Profile
	if user.Profile != nil {
		profile = *user.Profile
	}
	if patch.Name != nil {
		profile.Name = *patch.Name
	}
	if patch.Phone != nil {
		profile.Phone = *patch.Phone
	}
	if patch.ProfileImage != nil {
		profile.ProfileImage = *patch.ProfileImage
	}
	user.Profile = &profile
	s.Auth.UserData = &user
	return s
}

// AuthPending marks an auth operation in flight and clears any prior error.
func AuthPending(s Snapshot) Snapshot {
	s.Auth.Loading = true
	s.Auth.Error = ""
	return s
}

// AuthFulfilled completes an auth operation with the unified user record.
func AuthFulfilled(s Snapshot, user *models.UserRecord) Snapshot {
	s.Auth.Status = true
	s.Auth.UserData = user
	s.Auth.Loading = false
	return s
}

// AuthRejected completes an auth operation with an error message.
func AuthRejected(s Snapshot, message string) Snapshot {
	s.Auth.Loading = false
	s.Auth.Error = message
	return s
}

// AddBooking appends a booking to the booking slice.
func AddBooking(s Snapshot, booking models.Booking) Snapshot {
	bookings := make([]models.Booking, 0, len(s.Bookings)+1)
	bookings = append(bookings, s.Bookings...)
	bookings = append(bookings, booking)
	s.Bookings = bookings
	return s
}

// ClearBookings empties the booking slice.
func ClearBookings(s Snapshot) Snapshot {
	s.Bookings = nil
	return s
}

// SetNotification replaces the pending notification message.
func SetNotification(s Snapshot, message string) Snapshot {
	s.Notification = message
	return s
}

// ClearNotification removes the pending notification message.
func ClearNotification(s Snapshot) Snapshot {
	s.Notification = ""
	return s
}
