package validators

import (
	"strings"

	"cybertrax/internal/models"
)

func ValidateCreateOrder(req *models.CreateOrderRequest) ValidationErrors {
	req.CarBrandModel = strings.TrimSpace(req.CarBrandModel)
	req.FromCity = strings.TrimSpace(req.FromCity)
	req.ToCity = strings.TrimSpace(req.ToCity)

	errs := ValidateStruct(req)
	if req.StartDate.IsZero() {
		errs.add("start_date", "required", "start_date is required")
	}
	return errs
}

// ValidatePreview requires a start date and each endpoint either by name or by id.
func ValidatePreview(req *models.PreviewRequest) ValidationErrors {
	req.FromCity = strings.TrimSpace(req.FromCity)
	req.ToCity = strings.TrimSpace(req.ToCity)

	var errs ValidationErrors
	if req.StartDate.IsZero() {
		errs.add("start_date", "required", "start_date is required")
	}
	if req.FromCity == "" && req.FromCityID <= 0 {
		errs.add("from_city", "required", "from_city is required")
	}
	if req.ToCity == "" && req.ToCityID <= 0 {
		errs.add("to_city", "required", "to_city is required")
	}
	return errs
}

func ValidatePaymentStatus(req *models.UpdatePaymentStatusRequest) ValidationErrors {
	req.PaymentStatus = models.PaymentStatus(strings.ToUpper(strings.TrimSpace(string(req.PaymentStatus))))
	return ValidateStruct(req)
}
