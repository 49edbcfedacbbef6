package handlers

import (
	"cybertrax/internal/models"
	"cybertrax/internal/services"
	"cybertrax/internal/utils"
	"cybertrax/internal/validators"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CityHandler struct {
	cityService services.CityService
	logger      *logger.Logger
}

func NewCityHandler(cityService services.CityService, log *logger.Logger) *CityHandler {
	return &CityHandler{
		cityService: cityService,
		logger:      log,
	}
}

// ListCities returns all cities, or only active ones with ?active=true
func (h *CityHandler) ListCities(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	cities, err := h.cityService.ListCities(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, cities)
}

func (h *CityHandler) CreateCity(c *gin.Context) {
	var request models.CreateCityRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateCreateCity(&request)) {
		return
	}

	city, err := h.cityService.CreateCity(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, city)
}

func (h *CityHandler) UpdateCity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var request models.UpdateCityRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateUpdateCity(&request)) {
		return
	}

	city, err := h.cityService.UpdateCity(c.Request.Context(), id, &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, city)
}

func (h *CityHandler) DeleteCity(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.cityService.DeleteCity(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.NoContentResponse(c)
}
