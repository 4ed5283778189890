package domain

import "context"

// Location is a coordinate pair in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Geolocator resolves the device position once. A denial or lookup failure
// is reported as an error wrapping ErrLocationUnavailable.
type Geolocator interface {
	Locate(ctx context.Context) (Location, error)
}
