package validators

import (
	"strings"

	"cybertrax/internal/models"
	"cybertrax/internal/utils"
)

func ValidateCreateCity(req *models.CreateCityRequest) ValidationErrors {
	req.Name = strings.TrimSpace(req.Name)
	errs := ValidateStruct(req)
	if (req.Latitude == nil) != (req.Longitude == nil) {
		errs.add("latitude", "coordinates", "latitude and longitude must be set together")
	}
	return errs
}

func ValidateUpdateCity(req *models.UpdateCityRequest) ValidationErrors {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	return ValidateStruct(req)
}

func ValidateCreateTariff(req *models.CreateTariffRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateUpdateTariff(req *models.UpdateTariffRequest) ValidationErrors {
	return ValidateStruct(req)
}

// ValidateCreateUser normalizes the phone in place after validating it.
func ValidateCreateUser(req *models.CreateUserRequest) ValidationErrors {
	req.FullName = strings.TrimSpace(req.FullName)
	errs := ValidateStruct(req)
	if len(errs) == 0 {
		req.Phone = utils.NormalizePhone(req.Phone)
	}
	return errs
}

func ValidateCreateFixedRoute(req *models.CreateFixedRouteRequest) ValidationErrors {
	req.FromCity = strings.TrimSpace(req.FromCity)
	req.ToCity = strings.TrimSpace(req.ToCity)
	return ValidateStruct(req)
}

func ValidateCreateCityDistance(req *models.CreateCityDistanceRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateUpdateCityDistance(req *models.UpdateCityDistanceRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateAdminLogin(req *models.AdminLoginRequest) ValidationErrors {
	req.Login = strings.TrimSpace(req.Login)
	return ValidateStruct(req)
}
