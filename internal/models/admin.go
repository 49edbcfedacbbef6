package models

import (
	"time"
)

type Admin struct {
	ID           int64      `json:"id" bson:"_id"`
	Login        string     `json:"login" bson:"login"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
}

type AdminLoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Token   string `json:"token"`
	AdminID int64  `json:"admin_id"`
}
