package models

import "time"

// GuestUser is the owner value of a booking created without an
// authenticated identity.
const GuestUser = "guest"

// MenuSelection is a cart entry, keyed by menu ID inside a reservation.
// Quantity never drops below 1; removing a selection deletes the entry.
type MenuSelection struct {
	MenuID   int64   `json:"menuId"`
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	Image    string  `json:"image,omitempty"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Booking is a reservation created at checkout confirmation. Guest bookings
// carry User == GuestUser and are mirrored to device storage until the user
// authenticates.
type Booking struct {
	ID            string                  `json:"id"`
	User          string                  `json:"user"`
	Restaurant    Restaurant              `json:"restaurant"`
	Date          string                  `json:"date"`
	Time          string                  `json:"time"`
	People        int                     `json:"people"`
	SelectedMenus map[int64]MenuSelection `json:"selectedMenus"`
	TotalPrice    float64                 `json:"totalPrice"`
	Name          string                  `json:"name"`
	Phone         string                  `json:"phone"`
	CreatedAt     time.Time               `json:"createdAt"`
}

// HistoryBooking is a past booking as returned by the backend booking list.
type HistoryBooking struct {
	ID               int64      `json:"id"`
	Hotel            Restaurant `json:"hotel"`
	Date             string     `json:"date"`
	Time             string     `json:"time"`
	Seats            int        `json:"seats"`
	TotalAmount      float64    `json:"total_amount"`
	IsEligibleToRate bool       `json:"is_eligible_to_rate"`
	Ratings          []Rating   `json:"ratings,omitempty"`
}
