package routes

import (
	handlers "cybertrax/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupCityRoutes sets up city catalog routes; reads are public
func SetupCityRoutes(r *gin.RouterGroup, cityHandler *handlers.CityHandler, admin gin.HandlerFunc) {
	cities := r.Group("/cities")
	{
		cities.GET("", cityHandler.ListCities)
		cities.POST("", admin, cityHandler.CreateCity)
		cities.PUT("/:id", admin, cityHandler.UpdateCity)
		cities.DELETE("/:id", admin, cityHandler.DeleteCity)
	}
}

func SetupTariffRoutes(r *gin.RouterGroup, tariffHandler *handlers.TariffHandler, admin gin.HandlerFunc) {
	tariffs := r.Group("/tariffs")
	{
		tariffs.GET("", tariffHandler.ListTariffs)
		tariffs.POST("", admin, tariffHandler.CreateTariff)
		tariffs.PUT("/:id", admin, tariffHandler.UpdateTariff)
		tariffs.DELETE("/:id", admin, tariffHandler.DeleteTariff)
	}
}

// SetupUserRoutes sets up client registration and lookup. Clients identify
// themselves by id only, so these stay public.
func SetupUserRoutes(r *gin.RouterGroup, userHandler *handlers.UserHandler) {
	users := r.Group("/users")
	{
		users.POST("", userHandler.CreateUser)
		users.GET("", userHandler.ListUsers)
		users.GET("/:id", userHandler.GetUser)
	}
}

func SetupRouteRoutes(
	r *gin.RouterGroup,
	fixedRouteHandler *handlers.FixedRouteHandler,
	distanceHandler *handlers.CityDistanceHandler,
	admin gin.HandlerFunc,
) {
	meta := r.Group("/meta")
	{
		meta.GET("/fixed-routes", fixedRouteHandler.ListFixedRoutes)
		meta.POST("/fixed-routes", admin, fixedRouteHandler.CreateFixedRoute)
		meta.DELETE("/fixed-routes/:id", admin, fixedRouteHandler.DeleteFixedRoute)
	}

	distances := r.Group("/city-distances")
	{
		distances.GET("", distanceHandler.ListCityDistances)
		distances.POST("", admin, distanceHandler.CreateCityDistance)
		distances.POST("/sync", admin, distanceHandler.SyncCityDistances)
		distances.PUT("/:id", admin, distanceHandler.UpdateCityDistance)
		distances.DELETE("/:id", admin, distanceHandler.DeleteCityDistance)
	}
}
