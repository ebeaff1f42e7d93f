package routes

import (
	"github.com/Mina-Sayed/tocaan-payment-api/controllers"
	"github.com/Mina-Sayed/tocaan-payment-api/middleware"
	"github.com/Mina-Sayed/tocaan-payment-api/utils"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())

	api := router.Group("/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)

			authenticated := auth.Group("")
			authenticated.Use(middleware.AuthMiddleware())
			{
				authenticated.GET("/me", controllers.Me)
				authenticated.POST("/refresh", controllers.Refresh)
				authenticated.POST("/logout", controllers.Logout)
			}
		}

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.POST("/orders", controllers.CreateOrder)
			protected.GET("/orders", controllers.ListOrders)
			protected.GET("/orders/:id", controllers.GetOrder)
			protected.PUT("/orders/:id", controllers.UpdateOrder)
			protected.PATCH("/orders/:id", controllers.UpdateOrder)
			protected.DELETE("/orders/:id", controllers.DeleteOrder)
			protected.GET("/orders/:id/invoice", controllers.DownloadInvoice)

			protected.POST("/orders/:id/payments", controllers.ProcessPayment)
			protected.GET("/orders/:id/payments", controllers.ListOrderPayments)
			protected.GET("/payments", controllers.ListPayments)
			protected.GET("/payments/export", controllers.ExportPayments)
		}
	}

	return router
}
