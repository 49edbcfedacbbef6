package maps

import (
	"context"
	"math"

	"cybertrax/internal/utils"
)

// HaversineProvider estimates road distance as the great-circle distance
// multiplied by a road factor. Both places need coordinates.
type HaversineProvider struct {
	roadFactor float64
}

func NewHaversineProvider(roadFactor float64) *HaversineProvider {
	if roadFactor < 1 {
		roadFactor = 1
	}
	return &HaversineProvider{roadFactor: roadFactor}
}

func (h *HaversineProvider) Name() string {
	return "haversine"
}

func (h *HaversineProvider) DistanceKm(_ context.Context, from, to Place) (int, error) {
	if from.Location == nil || to.Location == nil {
		return 0, ErrDistanceUnavailable
	}

	km := utils.CalculateDistance(
		from.Location.Latitude, from.Location.Longitude,
		to.Location.Latitude, to.Location.Longitude,
	)
	km = math.Round(km * h.roadFactor)
	if km < 1 {
		return 0, ErrDistanceUnavailable
	}

	return int(km), nil
}
