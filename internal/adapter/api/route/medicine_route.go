package route

import (
	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/controller"
)

// RegisterMedicineRoutes registra as rotas do módulo de medicamentos
func RegisterMedicineRoutes(r *gin.RouterGroup, medicineController *controller.MedicineController) {
	medicines := r.Group("/medicines")
	{
		medicines.POST("", medicineController.Create)
		medicines.GET("", medicineController.List)
		medicines.GET("/:id", medicineController.Get)
		medicines.PUT("/:id", medicineController.Update)
		medicines.DELETE("/:id", medicineController.Delete)
	}
}
