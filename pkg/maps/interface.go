package maps

import (
	"context"
	"errors"
)

// ErrDistanceUnavailable means a provider has no answer for the pair; the
// next provider in a chain may still resolve it.
var ErrDistanceUnavailable = errors.New("distance unavailable")

type DistanceProvider interface {
	Name() string
	DistanceKm(ctx context.Context, from, to Place) (int, error)
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Place identifies a city for distance lookups. Location is optional.
type Place struct {
	Name     string
	Location *Location
}
