package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cybertrax/internal/models"
	"cybertrax/internal/repositories/interfaces"
	"cybertrax/internal/utils"
	"cybertrax/pkg/logger"
)

type OrderService interface {
	CreateOrder(ctx context.Context, request *models.CreateOrderRequest) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	ListOrders(ctx context.Context, filter *models.OrderFilter) (*models.OrderPage, error)

	// PayOrder records a client payment. Orders that are already settled are
	// returned unchanged.
	PayOrder(ctx context.Context, id int64) (*models.Order, error)

	// UpdatePaymentStatus sets any payment status on behalf of an admin.
	UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) (*models.Order, error)

	DeleteOrder(ctx context.Context, id int64) error
}

type orderService struct {
	orderRepo interfaces.OrderRepository
	userRepo  interfaces.UserRepository
	cityRepo  interfaces.CityRepository
	pricing   PricingService
	events    EventPublisher
	audit     *logger.AuditLogger
	logger    *logger.Logger
}

func NewOrderService(
	orderRepo interfaces.OrderRepository,
	userRepo interfaces.UserRepository,
	cityRepo interfaces.CityRepository,
	pricing PricingService,
	events EventPublisher,
	log *logger.Logger,
) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		cityRepo:  cityRepo,
		pricing:   pricing,
		events:    events,
		audit:     logger.NewAuditLogger(log),
		logger:    log,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, request *models.CreateOrderRequest) (*models.Order, error) {
	user, err := s.userRepo.GetByID(ctx, request.UserID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	from, err := s.getCity(ctx, request.FromCityID)
	if err != nil {
		return nil, err
	}
	to, err := s.getCity(ctx, request.ToCityID)
	if err != nil {
		return nil, err
	}

	quote, err := s.pricing.QuoteRoute(ctx, request.StartDate, from, to)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:        user.ID,
		UserFullName:  user.FullName,
		UserPhone:     user.Phone,
		CarBrandModel: request.CarBrandModel,
		FromCityID:    from.ID,
		ToCityID:      to.ID,
		FromCity:      from.Name,
		ToCity:        to.Name,
		StartDate:     request.StartDate,
		PaymentStatus: models.PaymentStatusPending,
	}
	order.ApplyQuote(quote)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.WithOrderID(order.ID).WithFields(logger.Fields{
		"user_id":         order.UserID,
		"transport_price": order.TransportPrice,
	}).Info("Order created")

	s.publish(ctx, models.OrderEventCreated, order, "")
	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *orderService) ListOrders(ctx context.Context, filter *models.OrderFilter) (*models.OrderPage, error) {
	if filter == nil {
		filter = &models.OrderFilter{}
	}
	if filter.Page < 1 {
		filter.Page = utils.DefaultPage
	}
	if filter.Limit < utils.MinPageSize || filter.Limit > utils.MaxPageSize {
		filter.Limit = utils.DefaultPageSize
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &models.OrderPage{
		Items: orders,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: utils.TotalPages(total, filter.Limit),
	}, nil
}

func (s *orderService) PayOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, changed, err := s.orderRepo.MarkPaid(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}

	if changed {
		s.publish(ctx, models.OrderEventPaid, order, models.PaymentStatusPending)
	}
	return order, nil
}

func (s *orderService) UpdatePaymentStatus(ctx context.Context, id int64, status models.PaymentStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, ErrInvalidPaymentStatus
	}

	current, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.UpdatePaymentStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update payment status: %w", err)
	}

	s.audit.LogAction(ctx, "update_payment_status", "order", id, logger.Fields{
		"prev_status": current.PaymentStatus,
		"new_status":  status,
	})

	if current.PaymentStatus != status {
		s.publish(ctx, models.OrderEventStatusChanged, order, current.PaymentStatus)
	}
	return order, nil
}

func (s *orderService) DeleteOrder(ctx context.Context, id int64) error {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.audit.LogAction(ctx, "delete", "order", id, nil)
	s.publish(ctx, models.OrderEventDeleted, order, order.PaymentStatus)
	return nil
}

func (s *orderService) getCity(ctx context.Context, id int64) (*models.City, error) {
	city, err := s.cityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrCityNotFound
		}
		return nil, fmt.Errorf("failed to get city: %w", err)
	}
	return city, nil
}

func (s *orderService) publish(ctx context.Context, eventType models.OrderEventType, order *models.Order, prev models.PaymentStatus) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, &models.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		Order:      order,
		PrevStatus: prev,
		OccurredAt: time.Now().UTC(),
	})
}
