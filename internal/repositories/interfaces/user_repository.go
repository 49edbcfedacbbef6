package interfaces

import (
	"context"

	"cybertrax/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	// List returns users newest first, optionally filtered by exact phone.
	List(ctx context.Context, phone string) ([]*models.User, error)
}

type AdminRepository interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByID(ctx context.Context, id int64) (*models.Admin, error)
	GetByLogin(ctx context.Context, login string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
	UpdateLastLogin(ctx context.Context, id int64) error
}
