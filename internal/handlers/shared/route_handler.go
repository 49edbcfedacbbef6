package handlers

import (
	"cybertrax/internal/models"
	"cybertrax/internal/services"
	"cybertrax/internal/utils"
	"cybertrax/internal/validators"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
)

type FixedRouteHandler struct {
	routeService services.FixedRouteService
	logger       *logger.Logger
}

func NewFixedRouteHandler(routeService services.FixedRouteService, log *logger.Logger) *FixedRouteHandler {
	return &FixedRouteHandler{
		routeService: routeService,
		logger:       log,
	}
}

func (h *FixedRouteHandler) ListFixedRoutes(c *gin.Context) {
	routes, err := h.routeService.ListFixedRoutes(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, routes)
}

func (h *FixedRouteHandler) CreateFixedRoute(c *gin.Context) {
	var request models.CreateFixedRouteRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateCreateFixedRoute(&request)) {
		return
	}

	route, err := h.routeService.CreateFixedRoute(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, route)
}

func (h *FixedRouteHandler) DeleteFixedRoute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.routeService.DeleteFixedRoute(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.NoContentResponse(c)
}

type CityDistanceHandler struct {
	distanceService services.CityDistanceService
	syncService     *services.DistanceSyncService
	logger          *logger.Logger
}

func NewCityDistanceHandler(
	distanceService services.CityDistanceService,
	syncService *services.DistanceSyncService,
	log *logger.Logger,
) *CityDistanceHandler {
	return &CityDistanceHandler{
		distanceService: distanceService,
		syncService:     syncService,
		logger:          log,
	}
}

func (h *CityDistanceHandler) ListCityDistances(c *gin.Context) {
	distances, err := h.distanceService.ListCityDistances(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, distances)
}

func (h *CityDistanceHandler) CreateCityDistance(c *gin.Context) {
	var request models.CreateCityDistanceRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateCreateCityDistance(&request)) {
		return
	}

	distance, err := h.distanceService.CreateCityDistance(c.Request.Context(), &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, distance)
}

func (h *CityDistanceHandler) UpdateCityDistance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var request models.UpdateCityDistanceRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateUpdateCityDistance(&request)) {
		return
	}

	distance, err := h.distanceService.UpdateCityDistance(c.Request.Context(), id, &request)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, distance)
}

func (h *CityDistanceHandler) DeleteCityDistance(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.distanceService.DeleteCityDistance(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.NoContentResponse(c)
}

// SyncCityDistances runs the distance sync job immediately.
func (h *CityDistanceHandler) SyncCityDistances(c *gin.Context) {
	if h.syncService == nil {
		utils.NotFoundResponse(c, "Distance sync is not configured")
		return
	}

	result, err := h.syncService.Sync(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, result)
}
