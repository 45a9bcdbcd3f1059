// Package navigation decides routing on load: login enforcement and
// redirect-after-login resumption, derived once per navigation event from
// explicit inputs rather than render timing.
package navigation

import (
	"context"
	"encoding/json"

	"tablenow/models"
	"tablenow/storage"

	"go.uber.org/zap"
)

// SavedDestination marks a decision that resumes the deep link stored in
// the redirect marker.
const SavedDestination = "saved"

// Decision is the outcome of a routing check. An empty Destination means
// the requested page stands.
type Decision struct {
	Destination   string
	ConsumeMarker bool
}

// Decide is the pure routing rule. Precedence: auth required and absent
// routes to login; auth not required but present routes to the default
// page; a pending marker with an authenticated session resumes the saved
// page and consumes the marker.
func Decide(authPresent, markerPresent, authRequired bool) Decision {
	switch {
	case authRequired && !authPresent:
		return Decision{Destination: models.RouteLogin}
	case !authRequired && authPresent:
		return Decision{Destination: models.RouteProfile}
	case markerPresent && authPresent:
		return Decision{Destination: SavedDestination, ConsumeMarker: true}
	default:
		return Decision{}
	}
}

// Outcome is a resolved navigation: the route to take and any deep-linked
// page state restored from the marker.
type Outcome struct {
	Destination string          `json:"destination,omitempty"`
	State       json.RawMessage `json:"state,omitempty"`
}

// Guard evaluates routing for a device against its stored token and
// redirect marker. A malformed marker counts as absent, so routing falls
// back to the defaults instead of failing the load.
type Guard struct {
	Devices storage.DeviceStore
	Logger  *zap.Logger
}

// Resolve runs the routing rule and consumes the marker when the decision
// calls for it.
func (g *Guard) Resolve(ctx context.Context, deviceID string, authRequired bool) Outcome {
	_, authPresent := storage.Token(ctx, g.Devices, deviceID)
	marker, markerPresent := storage.RedirectMarker(ctx, g.Devices, deviceID, g.Logger)

	decision := Decide(authPresent, markerPresent, authRequired)

	if decision.ConsumeMarker {
		if err := g.Devices.Delete(ctx, deviceID, storage.KeyRedirectState); err != nil {
			g.Logger.Warn("failed to consume redirect marker",
				zap.String("deviceID", deviceID), zap.Error(err))
		}
	}

	if decision.Destination == SavedDestination {
		return Outcome{
			Destination: marker.Location.Pathname,
			State:       marker.Location.State,
		}
	}
	return Outcome{Destination: decision.Destination}
}
