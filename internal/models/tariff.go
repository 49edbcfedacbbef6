package models

import (
	"time"
)

// Tariff holds the per-km rates for one calendar month.
type Tariff struct {
	ID               int64     `json:"id" bson:"_id"`
	Month            int       `json:"month" bson:"month" validate:"month"`
	PricePerKmLe1000 int64     `json:"price_per_km_le_1000" bson:"price_per_km_le_1000" validate:"gte=0"`
	PricePerKmGt1000 int64     `json:"price_per_km_gt_1000" bson:"price_per_km_gt_1000" validate:"gte=0"`
	CreatedAt        time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" bson:"updated_at"`
}

type CreateTariffRequest struct {
	Month            int    `json:"month" validate:"month"`
	PricePerKmLe1000 *int64 `json:"price_per_km_le_1000" validate:"required,gte=0"`
	PricePerKmGt1000 *int64 `json:"price_per_km_gt_1000" validate:"required,gte=0"`
}

type UpdateTariffRequest struct {
	Month            *int   `json:"month" validate:"omitempty,month"`
	PricePerKmLe1000 *int64 `json:"price_per_km_le_1000" validate:"omitempty,gte=0"`
	PricePerKmGt1000 *int64 `json:"price_per_km_gt_1000" validate:"omitempty,gte=0"`
}
