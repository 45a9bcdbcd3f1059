package models

// Gallery is a single gallery image of a restaurant.
type Gallery struct {
	ID    int64  `json:"id"`
	Image string `json:"image"`
}

// Restaurant is the client-side view of a restaurant (backend "hotel").
type Restaurant struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name,omitempty"`
	RestaurantName string    `json:"restaurant_name,omitempty"`
	Type           string    `json:"type,omitempty"`
	ProfileImage   string    `json:"profile_image,omitempty"`
	Galleries      []Gallery `json:"galleries,omitempty"`
	IsApproved     bool      `json:"is_approved,omitempty"`
	Status         string    `json:"status,omitempty"`
	Latitude       float64   `json:"latitude,omitempty"`
	Longitude      float64   `json:"longitude,omitempty"`

	// DistanceKm is computed client-side from the caller's coordinates.
	DistanceKm float64 `json:"distance_km,omitempty"`
}

// Menu is a single menu item offered by a restaurant.
type Menu struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Detail   string  `json:"detail,omitempty"`
	Duration string  `json:"duration,omitempty"`
	Price    float64 `json:"price"`
	Type     string  `json:"type,omitempty"`
	Image    string  `json:"image,omitempty"`
}

// Favorite is a server-owned reference to a favorited restaurant. Read-only
// from the client's perspective.
type Favorite struct {
	ID      int64      `json:"id"`
	HotelID int64      `json:"hotel_id"`
	Hotel   Restaurant `json:"hotel"`
}

// Rating is a review submitted for a past booking.
type Rating struct {
	TableBookingID int64  `json:"table_booking_id"`
	HotelID        int64  `json:"hotel_id"`
	UserID         int64  `json:"user_id"`
	Rating         int    `json:"rating"`
	Review         string `json:"review,omitempty"`
}
