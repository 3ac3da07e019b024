package quote

import (
	"context"
	"errors"
)

// ErrRouteNotFound is returned by a RouteProvider when no drivable route exists.
var ErrRouteNotFound = errors.New("route not found")

// RouteResult is a value object holding the one-way metrics between pickup and delivery.
type RouteResult struct {
	OneWayDistanceKm      float64 `json:"one_way_distance_km"`
	OneWayDurationSeconds int     `json:"one_way_duration_seconds"`
	OriginLabel           string  `json:"origin_label"`
	DestinationLabel      string  `json:"destination_label"`
}

// Clamped returns a copy with negative metrics replaced by zero.
func (r RouteResult) Clamped() RouteResult {
	if r.OneWayDistanceKm < 0 {
		r.OneWayDistanceKm = 0
	}
	if r.OneWayDurationSeconds < 0 {
		r.OneWayDurationSeconds = 0
	}
	return r
}

// RouteProvider resolves an address pair into a one-way driving route.
type RouteProvider interface {
	// Route returns the first route's first leg between origin and destination.
	Route(ctx context.Context, origin, destination string) (RouteResult, error)
}
