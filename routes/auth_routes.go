package routes

import (
	handlers "cybertrax/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

func SetupAuthRoutes(r *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	auth := r.Group("/auth")
	{
		auth.POST("/admin/login", authHandler.AdminLogin)
	}
}
