package geo

import (
	"context"

	"servicehub/models"
)

// CoordinateSource yields the user's raw coordinates. Acquisition may block
// (device prompt, frontend push) so it takes a context; the resolver bounds
// the wait.
type CoordinateSource interface {
	Coordinates(ctx context.Context) (models.Coordinates, error)
}

// ReverseGeocoder turns raw coordinates into a human address.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*models.GeoLocation, error)
}

// GeoService resolves the user's position end to end.
type GeoService interface {
	// Resolve never returns an error: on timeout or denial it yields a
	// not-detected location that still permits manual search.
	Resolve(ctx context.Context) *models.GeoLocation
	// Locate reverse-geocodes explicit coordinates (frontend-supplied).
	Locate(ctx context.Context, coords models.Coordinates) *models.GeoLocation
}
