package models

import (
	"time"
)

type City struct {
	ID        int64     `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name" validate:"required"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	Latitude  *float64  `json:"latitude" bson:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude *float64  `json:"longitude" bson:"longitude,omitempty" validate:"omitempty,longitude"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (c *City) HasCoordinates() bool {
	return c.Latitude != nil && c.Longitude != nil
}

type CreateCityRequest struct {
	Name      string   `json:"name" validate:"required,min=1,max=100"`
	IsActive  *bool    `json:"is_active"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

type UpdateCityRequest struct {
	Name      *string  `json:"name" validate:"omitempty,min=1,max=100"`
	IsActive  *bool    `json:"is_active"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}
