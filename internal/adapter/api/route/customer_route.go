package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/controller"
)

// RegisterCustomerRoutes registra as rotas do módulo de clientes
func RegisterCustomerRoutes(
	r *gin.RouterGroup,
	customerController *controller.CustomerController,
	creditController *controller.CreditController,
	saleController *controller.SaleController,
	statementController *controller.StatementController,
) {
	customers := r.Group("/customers")
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/search", customerController.FindByName)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
		customers.DELETE("/:id", customerController.Delete)

		customers.GET("/:id/sales", saleController.ListByCustomer)
		customers.GET("/:id/credits", creditController.ListByCustomer)
		customers.GET("/:id/balance", creditController.Balance)
		customers.GET("/:id/statements", statementController.Download)
	}
}
