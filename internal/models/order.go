package models

import (
	"time"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusManual  PaymentStatus = "MANUAL"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusManual:
		return true
	}
	return false
}

// IsSettled reports whether no further client payment is expected.
func (s PaymentStatus) IsSettled() bool {
	return s == PaymentStatusPaid || s == PaymentStatusManual
}

type Order struct {
	ID                     int64         `json:"id" bson:"_id"`
	CreatedAt              time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt              time.Time     `json:"updated_at" bson:"updated_at"`
	UserID                 int64         `json:"user_id" bson:"user_id"`
	UserFullName           string        `json:"user_full_name" bson:"user_full_name"`
	UserPhone              string        `json:"user_phone" bson:"user_phone"`
	CarBrandModel          string        `json:"car_brand_model" bson:"car_brand_model"`
	FromCityID             int64         `json:"from_city_id" bson:"from_city_id"`
	ToCityID               int64         `json:"to_city_id" bson:"to_city_id"`
	FromCity               string        `json:"from_city" bson:"from_city"`
	ToCity                 string        `json:"to_city" bson:"to_city"`
	StartDate              Date          `json:"start_date" bson:"start_date"`
	EtaDate                Date          `json:"eta_date" bson:"eta_date"`
	DistanceKm             int           `json:"distance_km" bson:"distance_km"`
	AppliedPricePerKm      *int64        `json:"applied_price_per_km" bson:"applied_price_per_km"`
	IsFixedRoute           bool          `json:"is_fixed_route" bson:"is_fixed_route"`
	TransportPrice         int64         `json:"transport_price" bson:"transport_price"`
	InsurancePrice         int64         `json:"insurance_price" bson:"insurance_price"`
	DurationHours          int           `json:"duration_hours" bson:"duration_hours"`
	DurationDays           int           `json:"duration_days" bson:"duration_days"`
	DurationHoursRemainder int           `json:"duration_hours_remainder" bson:"duration_hours_remainder"`
	PaymentStatus          PaymentStatus `json:"payment_status" bson:"payment_status"`
	PaidAt                 *time.Time    `json:"paid_at,omitempty" bson:"paid_at,omitempty"`
}

// ApplyQuote copies the priced fields of q onto the order.
func (o *Order) ApplyQuote(q *Quote) {
	o.DistanceKm = q.DistanceKm
	o.AppliedPricePerKm = q.AppliedPricePerKm
	o.IsFixedRoute = q.IsFixedRoute
	o.TransportPrice = q.TransportPrice
	o.InsurancePrice = q.InsurancePrice
	o.DurationHours = q.DurationHours
	o.DurationDays = q.DurationDays
	o.DurationHoursRemainder = q.DurationHoursRemainder
	o.EtaDate = q.EtaDate
}

type CreateOrderRequest struct {
	UserID        int64  `json:"user_id" validate:"required,gt=0"`
	CarBrandModel string `json:"car_brand_model" validate:"required,max=200"`
	FromCityID    int64  `json:"from_city_id" validate:"required,gt=0"`
	ToCityID      int64  `json:"to_city_id" validate:"required,gt=0,nefield=FromCityID"`
	FromCity      string `json:"from_city"`
	ToCity        string `json:"to_city"`
	StartDate     Date   `json:"start_date"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus PaymentStatus `json:"payment_status" validate:"required,payment_status"`
}

type OrderSort string

const (
	OrderSortCreated OrderSort = "created"
	OrderSortStart   OrderSort = "start"
	OrderSortEta     OrderSort = "eta"
	OrderSortCost    OrderSort = "cost"
)

type OrderFilter struct {
	UserID        *int64
	StartFrom     *Date
	StartTo       *Date
	FromCityID    *int64
	ToCityID      *int64
	PaymentStatus *PaymentStatus
	OrderBy       OrderSort
	Page          int
	Limit         int
}

type OrderPage struct {
	Items []*Order `json:"items"`
	Total int64    `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Pages int      `json:"pages"`
}

type OrderEventType string

const (
	OrderEventCreated       OrderEventType = "order.created"
	OrderEventPaid          OrderEventType = "order.paid"
	OrderEventStatusChanged OrderEventType = "order.status_changed"
	OrderEventDeleted       OrderEventType = "order.deleted"
)

type OrderEvent struct {
	Type       OrderEventType `json:"type"`
	OrderID    int64          `json:"order_id"`
	Order      *Order         `json:"order,omitempty"`
	PrevStatus PaymentStatus  `json:"prev_status,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}
