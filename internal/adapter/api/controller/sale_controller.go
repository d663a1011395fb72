package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/repository"
	creditdomain "github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	customerdomain "github.com/hugohenrick/farmacia-pos/internal/domain/customer"
	medicinedomain "github.com/hugohenrick/farmacia-pos/internal/domain/medicine"
	saledomain "github.com/hugohenrick/farmacia-pos/internal/domain/sale"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

// SaleController gerencia as requisições relacionadas a vendas
type SaleController struct {
	saleRepo     saledomain.Repository
	medicineRepo medicinedomain.Repository
	customerRepo customerdomain.Repository
	ledger       *creditdomain.Ledger
	tx           creditdomain.TxRunner
	logger       logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(
	saleRepo saledomain.Repository,
	medicineRepo medicinedomain.Repository,
	customerRepo customerdomain.Repository,
	ledger *creditdomain.Ledger,
	tx creditdomain.TxRunner,
	logger logger.Logger,
) *SaleController {
	return &SaleController{
		saleRepo:     saleRepo,
		medicineRepo: medicineRepo,
		customerRepo: customerRepo,
		ledger:       ledger,
		tx:           tx,
		logger:       logger,
	}
}

// Create registra uma nova venda
// @Summary Criar venda
// @Description Registra uma venda com seus itens e baixa o estoque dos medicamentos na mesma transação
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param user-id header string false "ID do usuário"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	branchID := ctx.GetString("branch_id")
	actorID := ctx.GetString("actor_id")

	exists, err := c.customerRepo.Exists(ctx, branchID, req.CustomerID)
	if err != nil {
		c.logger.Error("erro ao verificar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao verificar cliente", err.Error()))
		return
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
		return
	}

	items := make([]saledomain.ItemInput, len(req.Items))
	for i, in := range req.Items {
		items[i] = saledomain.ItemInput{
			MedicineID: in.MedicineID,
			Quantity:   in.Quantity,
			Price:      in.Price,
		}
	}

	s, err := saledomain.NewSale(branchID, actorID, req.CustomerID, items)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar venda", err.Error()))
		return
	}

	// Baixa de estoque e gravação da venda dentro da mesma transação:
	// se algum item não tiver estoque, nada é persistido.
	err = c.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for _, item := range s.Items {
			if err := c.medicineRepo.DeductStock(txCtx, branchID, item.MedicineID, item.Quantity); err != nil {
				return err
			}
		}
		return c.saleRepo.Create(txCtx, s)
	})
	if err != nil {
		switch {
		case errors.Is(err, medicinedomain.ErrInsufficientStock):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "estoque insuficiente", err.Error()))
		case errors.Is(err, repository.ErrMedicineNotFound):
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "medicamento não encontrado", err.Error()))
		default:
			c.logger.Error("erro ao registrar venda", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao registrar venda", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(s))
}

// Get retorna uma venda pelo ID
// @Summary Buscar venda
// @Description Retorna uma venda com seus itens
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	s, err := c.saleRepo.FindByID(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// List retorna a lista de vendas
// @Summary Listar vendas
// @Description Retorna a lista de vendas da filial, paginada
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [get]
func (c *SaleController) List(ctx *gin.Context) {
	branchID := ctx.GetString("branch_id")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	sales, err := c.saleRepo.List(ctx, branchID, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	total, err := c.saleRepo.CountByBranch(ctx, branchID)
	if err != nil {
		c.logger.Error("erro ao contar vendas", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar vendas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, total, pagination.Page, pagination.PageSize))
}

// UpdatePaymentStatus altera o status de pagamento de uma venda
// @Summary Atualizar status de pagamento
// @Description Altera o status de pagamento. Quando o novo status é "credit", um crédito no valor total da venda é criado na mesma transação.
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param user-id header string false "ID do usuário"
// @Param id path string true "ID da venda"
// @Param status body dto.SalePaymentStatusRequest true "Novo status"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/payment-status [patch]
func (c *SaleController) UpdatePaymentStatus(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")
	actorID := ctx.GetString("actor_id")

	var req dto.SalePaymentStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	s, err := c.saleRepo.FindByID(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar venda", err.Error()))
		return
	}

	newStatus := saledomain.PaymentStatus(req.PaymentStatus)
	if err := s.TransitionPaymentStatus(newStatus); err != nil {
		switch {
		case errors.Is(err, saledomain.ErrInvalidStatus):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "status inválido", err.Error()))
		case errors.Is(err, saledomain.ErrStatusLocked):
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "status não pode ser alterado", err.Error()))
		default:
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao alterar status", err.Error()))
		}
		return
	}

	// A mudança de status e a criação do crédito (quando "credit")
	// acontecem na mesma transação: ou ambos persistem ou nenhum.
	err = c.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := c.saleRepo.UpdatePaymentStatus(txCtx, branchID, s.ID, newStatus); err != nil {
			return err
		}
		if newStatus == saledomain.PaymentCredit {
			_, err := c.ledger.CreateFromSale(txCtx, branchID, actorID, s, s.TotalAmount)
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, creditdomain.ErrCreditAlreadyExists) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "venda já possui crédito", err.Error()))
			return
		}
		c.logger.Error("erro ao atualizar status de pagamento", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao atualizar status", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// ListByCustomer retorna as vendas de um cliente
// @Summary Listar vendas por cliente
// @Description Retorna as vendas de um cliente, paginadas
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do cliente"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.SaleListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/sales [get]
func (c *SaleController) ListByCustomer(ctx *gin.Context) {
	customerID := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	sales, err := c.saleRepo.ListByCustomer(ctx, branchID, customerID, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar vendas do cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar vendas", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleListResponse(sales, len(sales), pagination.Page, pagination.PageSize))
}

// Receipt retorna os dados do recibo de uma venda
// @Summary Recibo da venda
// @Description Retorna os dados da venda para emissão de recibo, sem alterar estado
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/receipt [get]
func (c *SaleController) Receipt(ctx *gin.Context) {
	c.Get(ctx)
}

// Invoice retorna os dados da fatura de uma venda
// @Summary Fatura da venda
// @Description Retorna os dados da venda para emissão de fatura, sem alterar estado
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id}/invoice [get]
func (c *SaleController) Invoice(ctx *gin.Context) {
	c.Get(ctx)
}

// Delete remove uma venda e seus itens
// @Summary Remover venda
// @Description Remove a venda e seus itens na ordem correta de dependências
// @Tags sales
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID da venda"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales/{id} [delete]
func (c *SaleController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	if err := c.saleRepo.DeleteCascade(ctx, branchID, id); err != nil {
		if errors.Is(err, repository.ErrSaleNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "venda não encontrada", err.Error()))
			return
		}
		c.logger.Error("erro ao remover venda", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover venda", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}
