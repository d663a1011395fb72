package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/controller"
)

// RegisterSaleRoutes registra as rotas do módulo de vendas
func RegisterSaleRoutes(r *gin.RouterGroup, saleController *controller.SaleController) {
	sales := r.Group("/sales")
	{
		sales.POST("", saleController.Create)
		sales.GET("", saleController.List)
		sales.GET("/:id", saleController.Get)
		sales.DELETE("/:id", saleController.Delete)
		sales.PATCH("/:id/payment-status", saleController.UpdatePaymentStatus)
		sales.GET("/:id/receipt", saleController.Receipt)
		sales.GET("/:id/invoice", saleController.Invoice)
	}
}
