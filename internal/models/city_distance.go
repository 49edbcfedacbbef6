package models

import (
	"time"
)

type CityDistance struct {
	ID         int64     `json:"id" bson:"_id"`
	FromCityID int64     `json:"from_city_id" bson:"from_city_id"`
	ToCityID   int64     `json:"to_city_id" bson:"to_city_id"`
	DistanceKm int       `json:"distance_km" bson:"distance_km"`
	IsManual   bool      `json:"is_manual" bson:"is_manual"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" bson:"updated_at"`
}

type CreateCityDistanceRequest struct {
	FromCityID int64 `json:"from_city_id" validate:"required,gt=0"`
	ToCityID   int64 `json:"to_city_id" validate:"required,gt=0,nefield=FromCityID"`
	DistanceKm int   `json:"distance_km" validate:"required,gt=0"`
}

type UpdateCityDistanceRequest struct {
	DistanceKm *int `json:"distance_km" validate:"omitempty,gt=0"`
}
