package handlers

import (
	"cybertrax/internal/models"
	"cybertrax/internal/services"
	"cybertrax/internal/utils"
	"cybertrax/internal/validators"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	logger      *logger.Logger
}

func NewAuthHandler(authService services.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      log,
	}
}

func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var request models.AdminLoginRequest
	if !bindJSON(c, &request) {
		return
	}
	if validationFailed(c, validators.ValidateAdminLogin(&request)) {
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request, c.ClientIP())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, response)
}
