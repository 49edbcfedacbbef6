package handlers

import (
	"cybertrax/internal/models"
	"cybertrax/internal/services"
	"cybertrax/internal/utils"
	"cybertrax/internal/validators"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TariffHandler struct {
	tariffService services.TariffService
	logger        *logger.Logger
}

func NewTariffHandler(tariffService services.TariffService, log *logger.Logger) *TariffHandler {
	return &TariffHandler{
		tariffService: tariffService,
		logger:        log,
	}
}

func (h *TariffHandler) ListTariffs(c *gin.Context) {
	tariffs, err := h.tariffService.ListTariffs(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, tariffs)
}

func (h *TariffHandler) CreateTariff(c *gin.Context) {
	var request models.CreateTariffRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateCreateTariff(&request)) {
		return
	}

	tariff, err := h.tariffService.CreateTariff(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, tariff)
}

func (h *TariffHandler) UpdateTariff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var request models.UpdateTariffRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateUpdateTariff(&request)) {
		return
	}

	tariff, err := h.tariffService.UpdateTariff(c.Request.Context(), id, &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, tariff)
}

func (h *TariffHandler) DeleteTariff(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.tariffService.DeleteTariff(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.NoContentResponse(c)
}
