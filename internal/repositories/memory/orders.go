package memory

import (
	"context"
	"sort"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
)

type orderRepository struct{ s *Store }

func NewOrderRepository(s *Store) interfaces.OrderRepository { return &orderRepository{s: s} }

func (r *orderRepository) Create(_ context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	order.ID = r.s.next("orders")
	order.CreatedAt = now
	order.UpdatedAt = now
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	r.s.orders[order.ID] = clone(order)
	return nil
}

func (r *orderRepository) GetByID(_ context.Context, id int64) (*models.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return clone(o), nil
}

func (r *orderRepository) List(_ context.Context, filter *models.OrderFilter) ([]*models.Order, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if filter == nil {
		filter = &models.OrderFilter{}
	}

	matched := make([]*models.Order, 0)
	for _, id := range sortedIDs(r.s.orders) {
		o := r.s.orders[id]
		if matches(o, filter) {
			matched = append(matched, clone(o))
		}
	}

	sort.SliceStable(matched, orderLess(matched, filter.OrderBy))

	total := int64(len(matched))
	if filter.Limit > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		start := (page - 1) * filter.Limit
		if start >= len(matched) {
			return []*models.Order{}, total, nil
		}
		end := start + filter.Limit
		if end > len(matched) {
			end = len(matched)
		}
		matched = matched[start:end]
	}

	return matched, total, nil
}

func (r *orderRepository) MarkPaid(_ context.Context, id int64) (*models.Order, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, false, interfaces.ErrNotFound
	}
	if o.PaymentStatus != models.PaymentStatusPending {
		return clone(o), false, nil
	}

	now := r.s.now()
	o.PaymentStatus = models.PaymentStatusPaid
	o.PaidAt = &now
	o.UpdatedAt = now
	return clone(o), true, nil
}

func (r *orderRepository) UpdatePaymentStatus(_ context.Context, id int64, status models.PaymentStatus) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	o, ok := r.s.orders[id]
	if !ok {
		return nil, interfaces.ErrNotFound
	}

	now := r.s.now()
	o.PaymentStatus = status
	o.UpdatedAt = now
	if status.IsSettled() {
		o.PaidAt = &now
	} else {
		o.PaidAt = nil
	}
	return clone(o), nil
}

func (r *orderRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.orders[id]; !ok {
		return interfaces.ErrNotFound
	}
	delete(r.s.orders, id)
	return nil
}

func matches(o *models.Order, f *models.OrderFilter) bool {
	if f.UserID != nil && o.UserID != *f.UserID {
		return false
	}
	if f.FromCityID != nil && o.FromCityID != *f.FromCityID {
		return false
	}
	if f.ToCityID != nil && o.ToCityID != *f.ToCityID {
		return false
	}
	if f.PaymentStatus != nil && o.PaymentStatus != *f.PaymentStatus {
		return false
	}
	if f.StartFrom != nil && o.StartDate.Before(f.StartFrom.Time) {
		return false
	}
	if f.StartTo != nil && o.StartDate.After(f.StartTo.Time) {
		return false
	}
	return true
}

func orderLess(orders []*models.Order, by models.OrderSort) func(i, j int) bool {
	return func(i, j int) bool {
		a, b := orders[i], orders[j]
		switch by {
		case models.OrderSortCost:
			if a.TransportPrice != b.TransportPrice {
				return a.TransportPrice > b.TransportPrice
			}
			return a.ID > b.ID
		case models.OrderSortEta:
			if !a.EtaDate.Equal(b.EtaDate.Time) {
				return a.EtaDate.Before(b.EtaDate.Time)
			}
			return a.ID < b.ID
		case models.OrderSortCreated:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.ID > b.ID
		default:
			if !a.StartDate.Equal(b.StartDate.Time) {
				return a.StartDate.After(b.StartDate.Time)
			}
			return a.ID > b.ID
		}
	}
}
