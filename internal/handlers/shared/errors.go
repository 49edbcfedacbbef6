package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"cybertrax/internal/services"
	"cybertrax/internal/utils"
	"cybertrax/internal/validators"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP statuses. Anything unexpected is
// logged and reported as a bare 500.
func respondError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrCityNotFound),
		errors.Is(err, services.ErrTariffNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrFixedRouteNotFound),
		errors.Is(err, services.ErrCityDistanceNotFound):
		utils.NotFoundResponse(c, err.Error())

	case errors.Is(err, services.ErrCityExists),
		errors.Is(err, services.ErrSyncInProgress):
		utils.ConflictResponse(c, err.Error())

	case errors.Is(err, services.ErrCityDistanceExists),
		errors.Is(err, services.ErrSameCity),
		errors.Is(err, services.ErrInvalidPaymentStatus):
		utils.BadRequestResponse(c, err.Error())

	case errors.Is(err, services.ErrNoTariffForMonth),
		errors.Is(err, services.ErrDistanceNotFound):
		utils.UnprocessableResponse(c, err.Error())

	case errors.Is(err, services.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())

	default:
		log.WithContext(c.Request.Context()).WithError(err).WithFields(logger.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Request failed")
		utils.InternalServerErrorResponse(c)
	}
}

// bindJSON decodes the request body, answering 400 on malformed JSON.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		utils.BadRequestResponse(c, utils.ErrInvalidRequest+": "+err.Error())
		return false
	}
	return true
}

func validationFailed(c *gin.Context, errs validators.ValidationErrors) bool {
	if len(errs) == 0 {
		return false
	}
	utils.ValidationErrorResponse(c, errs.ToMap())
	return true
}

func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		utils.BadRequestResponse(c, "Invalid "+param)
		return 0, false
	}
	return id, true
}
