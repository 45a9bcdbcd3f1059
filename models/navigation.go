package models

import "encoding/json"

// Well-known client routes.
const (
	RouteHome         = "/"
	RouteLogin        = "/login"
	RouteProfile      = "/profile"
	RouteConfirmation = "/thankyou"
)

// RouteLocation is a deep link: a path plus the opaque page state attached
// to it (for the reservation page: restaurant, date, time, party size).
type RouteLocation struct {
	Pathname string          `json:"pathname"`
	State    json.RawMessage `json:"state,omitempty"`
}

// RedirectState is the marker recording a deep link to resume after an
// authentication detour.
type RedirectState struct {
	FromReservation bool          `json:"fromReservation"`
	Location        RouteLocation `json:"location"`
}
