package routes

import (
	handlers "cybertrax/internal/handlers/shared"
	"cybertrax/internal/middleware"
	"cybertrax/internal/utils"
	"cybertrax/pkg/logger"
	"cybertrax/pkg/websocket"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	City         *handlers.CityHandler
	Tariff       *handlers.TariffHandler
	User         *handlers.UserHandler
	Order        *handlers.OrderHandler
	Auth         *handlers.AuthHandler
	FixedRoute   *handlers.FixedRouteHandler
	CityDistance *handlers.CityDistanceHandler
	Health       *handlers.HealthHandler
	WebSocket    *websocket.Handler
}

type RouterConfig struct {
	CORSAllowedOrigins []string
	TrustedProxies     []string
	WebSocketPath      string
}

// NewRouter builds the gin engine with the global middleware stack and every
// /api/v1 route.
func NewRouter(cfg RouterConfig, h *Handlers, auth middleware.AdminAuthenticator, log *logger.Logger) *gin.Engine {
	router := gin.New()
	_ = router.SetTrustedProxies(cfg.TrustedProxies)

	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		utils.NotFoundResponse(c, "Not found")
	})

	admin := middleware.AdminRequired(auth, log)

	v1 := router.Group("/api/v1")
	{
		SetupAuthRoutes(v1, h.Auth)
		SetupCityRoutes(v1, h.City, admin)
		SetupTariffRoutes(v1, h.Tariff, admin)
		SetupUserRoutes(v1, h.User)
		SetupOrderRoutes(v1, h.Order, admin)
		SetupRouteRoutes(v1, h.FixedRoute, h.CityDistance, admin)
	}

	if h.WebSocket != nil {
		path := cfg.WebSocketPath
		if path == "" {
			path = "/ws/admin"
		}
		router.GET(path, admin, h.WebSocket.HandleWebSocket)
	}

	if h.Health != nil {
		router.GET("/health", h.Health.Health)
	}

	return router
}
