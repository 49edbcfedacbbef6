package maps

import (
	"context"
	"fmt"
	"math"
	"time"

	"googlemaps.github.io/maps"
)

// GoogleMapsProvider resolves road distances through the Distance Matrix API.
// Only the distance matrix endpoint is used.
type GoogleMapsProvider struct {
	client  *maps.Client
	timeout time.Duration
}

func NewGoogleMapsProvider(apiKey string, timeout time.Duration) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return &GoogleMapsProvider{
		client:  client,
		timeout: timeout,
	}, nil
}

func (g *GoogleMapsProvider) Name() string {
	return "google"
}

func (g *GoogleMapsProvider) DistanceKm(ctx context.Context, from, to Place) (int, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := &maps.DistanceMatrixRequest{
		Origins:      []string{placeQuery(from)},
		Destinations: []string{placeQuery(to)},
		Mode:         maps.TravelModeDriving,
		Units:        maps.UnitsMetric,
	}

	resp, err := g.client.DistanceMatrix(ctx, req)
	if err != nil {
		return 0, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrDistanceUnavailable
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" || element.Distance.Meters <= 0 {
		return 0, ErrDistanceUnavailable
	}

	return int(math.Round(float64(element.Distance.Meters) / 1000)), nil
}

func placeQuery(p Place) string {
	if p.Location != nil {
		return fmt.Sprintf("%f,%f", p.Location.Latitude, p.Location.Longitude)
	}
	return p.Name
}
