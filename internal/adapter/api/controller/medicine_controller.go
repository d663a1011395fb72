package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/repository"
	medicinedomain "github.com/hugohenrick/farmacia-pos/internal/domain/medicine"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

// MedicineController gerencia as requisições relacionadas a medicamentos
type MedicineController struct {
	medicineRepo medicinedomain.Repository
	logger       logger.Logger
}

// NewMedicineController cria uma nova instância de MedicineController
func NewMedicineController(medicineRepo medicinedomain.Repository, logger logger.Logger) *MedicineController {
	return &MedicineController{
		medicineRepo: medicineRepo,
		logger:       logger,
	}
}

// Create cadastra um novo medicamento
// @Summary Criar medicamento
// @Description Cadastra um medicamento com preços e estoque inicial
// @Tags medicines
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param medicine body dto.MedicineRequest true "Dados do medicamento"
// @Success 201 {object} dto.MedicineResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /medicines [post]
func (c *MedicineController) Create(ctx *gin.Context) {
	var req dto.MedicineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	branchID := ctx.GetString("branch_id")

	m, err := medicinedomain.NewMedicine(branchID, req.Name, req.BuyingPrice, req.SellingPrice, req.StockQuantity)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar medicamento", err.Error()))
		return
	}
	m.Description = req.Description
	m.BatchNo = req.BatchNo
	m.MeasurementUnit = req.MeasurementUnit
	m.ExpiryDate = req.ExpiryDate

	if err := c.medicineRepo.Create(ctx, m); err != nil {
		c.logger.Error("erro ao criar medicamento no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar medicamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToMedicineResponse(m))
}

// Get retorna um medicamento pelo ID
// @Summary Buscar medicamento
// @Description Retorna os dados de um medicamento pelo ID
// @Tags medicines
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do medicamento"
// @Success 200 {object} dto.MedicineResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /medicines/{id} [get]
func (c *MedicineController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	m, err := c.medicineRepo.FindByID(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "medicamento não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar medicamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar medicamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMedicineResponse(m))
}

// List retorna a lista de medicamentos
// @Summary Listar medicamentos
// @Description Retorna a lista de medicamentos da filial, paginada. Com in_stock=true retorna só os com estoque disponível.
// @Tags medicines
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Param in_stock query bool false "Somente com estoque"
// @Success 200 {object} dto.MedicineListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /medicines [get]
func (c *MedicineController) List(ctx *gin.Context) {
	branchID := ctx.GetString("branch_id")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	var (
		medicines []*medicinedomain.Medicine
		err       error
	)
	if ctx.Query("in_stock") == "true" {
		medicines, err = c.medicineRepo.ListInStock(ctx, branchID, pagination.PageSize, pagination.Offset())
	} else {
		medicines, err = c.medicineRepo.List(ctx, branchID, pagination.PageSize, pagination.Offset())
	}
	if err != nil {
		c.logger.Error("erro ao listar medicamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar medicamentos", err.Error()))
		return
	}

	total, err := c.medicineRepo.CountByBranch(ctx, branchID)
	if err != nil {
		c.logger.Error("erro ao contar medicamentos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar medicamentos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMedicineListResponse(medicines, total, pagination.Page, pagination.PageSize))
}

// Update atualiza um medicamento
// @Summary Atualizar medicamento
// @Description Atualiza os dados de um medicamento existente
// @Tags medicines
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do medicamento"
// @Param medicine body dto.MedicineRequest true "Dados do medicamento"
// @Success 200 {object} dto.MedicineResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /medicines/{id} [put]
func (c *MedicineController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	var req dto.MedicineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	m, err := c.medicineRepo.FindByID(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "medicamento não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar medicamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar medicamento", err.Error()))
		return
	}

	if err := m.Update(req.Name, req.BuyingPrice, req.SellingPrice, req.StockQuantity); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar medicamento", err.Error()))
		return
	}
	m.Description = req.Description
	m.BatchNo = req.BatchNo
	m.MeasurementUnit = req.MeasurementUnit
	m.ExpiryDate = req.ExpiryDate

	if err := c.medicineRepo.Update(ctx, m); err != nil {
		c.logger.Error("erro ao atualizar medicamento no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar medicamento", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMedicineResponse(m))
}

// Delete remove um medicamento
// @Summary Remover medicamento
// @Description Remove um medicamento do catálogo
// @Tags medicines
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do medicamento"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /medicines/{id} [delete]
func (c *MedicineController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	if err := c.medicineRepo.Delete(ctx, branchID, id); err != nil {
		if errors.Is(err, repository.ErrMedicineNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "medicamento não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao remover medicamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover medicamento", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}
