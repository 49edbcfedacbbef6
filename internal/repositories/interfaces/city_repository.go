package interfaces

import (
	"context"

	"cybertrax/internal/models"
)

type CityRepository interface {
	Create(ctx context.Context, city *models.City) error
	GetByID(ctx context.Context, id int64) (*models.City, error)
	GetByName(ctx context.Context, name string) (*models.City, error)
	List(ctx context.Context, activeOnly bool) ([]*models.City, error)
	Update(ctx context.Context, city *models.City) error
	Delete(ctx context.Context, id int64) error
}
