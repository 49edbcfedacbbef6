package models

import (
	"time"
)

// FixedRoute overrides per-km pricing for one direction between two cities,
// matched by city name.
type FixedRoute struct {
	ID         int64     `json:"id" bson:"_id"`
	FromCity   string    `json:"from_city" bson:"from_city"`
	ToCity     string    `json:"to_city" bson:"to_city"`
	FixedPrice int64     `json:"fixed_price" bson:"fixed_price"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

type CreateFixedRouteRequest struct {
	FromCity   string `json:"from_city" validate:"required"`
	ToCity     string `json:"to_city" validate:"required,nefield=FromCity"`
	FixedPrice int64  `json:"fixed_price" validate:"gte=0"`
}
