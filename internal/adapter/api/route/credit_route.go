package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/controller"
)

// RegisterCreditRoutes registra as rotas do módulo de créditos
func RegisterCreditRoutes(r *gin.RouterGroup, creditController *controller.CreditController) {
	credits := r.Group("/credits")
	{
		credits.POST("", creditController.CreateManual)
		credits.POST("/payments", creditController.ApplyPayment)
	}
}
