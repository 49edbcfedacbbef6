package interfaces

import (
	"context"

	"cybertrax/internal/models"
)

type FixedRouteRepository interface {
	Create(ctx context.Context, route *models.FixedRoute) error
	GetByID(ctx context.Context, id int64) (*models.FixedRoute, error)
	// Find matches (from, to) exactly and in that direction only.
	Find(ctx context.Context, fromCity, toCity string) (*models.FixedRoute, error)
	List(ctx context.Context) ([]*models.FixedRoute, error)
	Delete(ctx context.Context, id int64) error
}

type CityDistanceRepository interface {
	Create(ctx context.Context, distance *models.CityDistance) error
	GetByID(ctx context.Context, id int64) (*models.CityDistance, error)
	// FindPair looks the pair up in either direction.
	FindPair(ctx context.Context, cityA, cityB int64) (*models.CityDistance, error)
	List(ctx context.Context) ([]*models.CityDistance, error)
	Update(ctx context.Context, distance *models.CityDistance) error
	Delete(ctx context.Context, id int64) error
}
