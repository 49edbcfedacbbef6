package models

import (
	"time"
)

type User struct {
	ID        int64     `json:"id" bson:"_id"`
	FullName  string    `json:"full_name" bson:"full_name"`
	Phone     string    `json:"phone" bson:"phone"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

type CreateUserRequest struct {
	FullName string `json:"full_name" validate:"required,min=1,max=200"`
	Phone    string `json:"phone" validate:"required,phone_number"`
}
