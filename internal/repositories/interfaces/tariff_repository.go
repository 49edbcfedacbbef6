package interfaces

import (
	"context"

	"cybertrax/internal/models"
)

type TariffRepository interface {
	Create(ctx context.Context, tariff *models.Tariff) error
	GetByID(ctx context.Context, id int64) (*models.Tariff, error)
	// GetForMonth returns the most recently created tariff for the month.
	GetForMonth(ctx context.Context, month int) (*models.Tariff, error)
	List(ctx context.Context) ([]*models.Tariff, error)
	Update(ctx context.Context, tariff *models.Tariff) error
	Delete(ctx context.Context, id int64) error
}
