package models

// Quote is the priced preview of a transport order.
type Quote struct {
	DistanceKm             int    `json:"distance_km"`
	IsFixedRoute           bool   `json:"is_fixed_route"`
	AppliedPricePerKm      *int64 `json:"applied_price_per_km"`
	TransportPrice         int64  `json:"transport_price"`
	InsurancePrice         int64  `json:"insurance_price"`
	DurationHours          int    `json:"duration_hours"`
	DurationDays           int    `json:"duration_days"`
	DurationHoursRemainder int    `json:"duration_hours_remainder"`
	EtaDate                Date   `json:"eta_date"`
}

type PreviewRequest struct {
	FromCity      string `json:"from_city"`
	ToCity        string `json:"to_city"`
	FromCityID    int64  `json:"from_city_id"`
	ToCityID      int64  `json:"to_city_id"`
	StartDate     Date   `json:"start_date"`
	CarBrandModel string `json:"car_brand_model"`
	UserID        int64  `json:"user_id"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
}
