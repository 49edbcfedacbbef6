package interfaces

import (
	"context"

	"cybertrax/internal/models"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int64) (*models.Order, error)
	// List applies filter including paging; a zero Limit returns every match.
	List(ctx context.Context, filter *models.OrderFilter) ([]*models.Order, int64, error)
	// MarkPaid moves a PENDING order to PAID. It reports false when the
	// order was already settled and returns the current state either way.
	MarkPaid(ctx context.Context, id int64) (*models.Order, bool, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}
