package middleware

import (
	"context"
	"strings"

	"cybertrax/internal/models"
	"cybertrax/internal/utils"
	"cybertrax/pkg/logger"

	"github.com/gin-gonic/gin"
)

// AdminAuthenticator is implemented by services.AuthService.
type AdminAuthenticator interface {
	ValidateToken(ctx context.Context, token string) (int64, error)
	VerifyCredentials(ctx context.Context, login, password string) (*models.Admin, error)
}

// AdminRequired accepts a bearer token, HTTP Basic credentials, or a ?token=
// query parameter (browsers cannot set headers on websocket upgrades). On
// success "admin_id" is set on the gin context and the request context.
func AdminRequired(auth AdminAuthenticator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		adminID, ok := authenticate(c, auth)
		if !ok {
			log.LogSecurityEvent("admin_auth_failed", "low", logger.Fields{
				"path":       c.FullPath(),
				"ip_address": c.ClientIP(),
			})
			utils.UnauthorizedResponse(c)
			return
		}

		c.Set("admin_id", adminID)
		c.Request = c.Request.WithContext(logger.ContextWithAdminID(ctx, adminID))

		c.Next()
	}
}

func authenticate(c *gin.Context, auth AdminAuthenticator) (int64, bool) {
	ctx := c.Request.Context()
	header := c.GetHeader("Authorization")

	switch {
	case strings.HasPrefix(header, "Bearer "):
		id, err := auth.ValidateToken(ctx, strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
		return id, err == nil

	case strings.HasPrefix(header, "Basic "):
		login, password, ok := c.Request.BasicAuth()
		if !ok {
			return 0, false
		}
		admin, err := auth.VerifyCredentials(ctx, login, password)
		if err != nil {
			return 0, false
		}
		return admin.ID, true

	case header == "" && c.Query("token") != "":
		id, err := auth.ValidateToken(ctx, c.Query("token"))
		return id, err == nil
	}

	return 0, false
}
