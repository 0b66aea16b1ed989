package geo

import (
	"context"

	"costasight-comparables/internal/models"
)

// Landmark is a named point of interest returned alongside a geocode result.
type Landmark struct {
	Name        string             `json:"name"`
	Coordinates models.Coordinates `json:"coordinates"`
}

// Result is the outcome of one external geocoding call.
type Result struct {
	Coordinates models.Coordinates `json:"coordinates"`
	Landmarks   []Landmark         `json:"landmarks,omitempty"`
	Confidence  float64            `json:"confidence"`
}

// Geocoder is the external resolution capability. Implementations must honor
// the context deadline; an empty result is an error, not a nil Result.
type Geocoder interface {
	Geocode(ctx context.Context, text string) (*Result, error)
}
