package routes

import (
	handlers "cybertrax/internal/handlers/shared"

	"github.com/gin-gonic/gin"
)

// SetupOrderRoutes sets up order routes. Preview, creation, lookup and
// payment serve the client site; the rest is admin only.
func SetupOrderRoutes(r *gin.RouterGroup, orderHandler *handlers.OrderHandler, admin gin.HandlerFunc) {
	orders := r.Group("/orders")
	{
		orders.POST("/preview", orderHandler.PreviewOrder)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/export", admin, orderHandler.ExportOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("/:id/pay", orderHandler.PayOrder)
		orders.PATCH("/:id/payment-status", admin, orderHandler.UpdatePaymentStatus)
		orders.DELETE("/:id", admin, orderHandler.DeleteOrder)
	}
}
