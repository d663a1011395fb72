package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/dto"
	creditdomain "github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	customerdomain "github.com/hugohenrick/farmacia-pos/internal/domain/customer"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

// CreditController gerencia as requisições de créditos e pagamentos
type CreditController struct {
	ledger       *creditdomain.Ledger
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCreditController cria uma nova instância de CreditController
func NewCreditController(ledger *creditdomain.Ledger, customerRepo customerdomain.Repository, logger logger.Logger) *CreditController {
	return &CreditController{
		ledger:       ledger,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateManual registra um crédito manual
// @Summary Criar crédito manual
// @Description Registra um débito avulso contra o cliente, sem venda de origem
// @Tags credits
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param user-id header string false "ID do usuário"
// @Param credit body dto.ManualCreditRequest true "Dados do crédito"
// @Success 201 {object} dto.CreditResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /credits [post]
func (c *CreditController) CreateManual(ctx *gin.Context) {
	var req dto.ManualCreditRequest
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

	cr, err := c.ledger.CreateManual(ctx, branchID, actorID, req.CustomerID, req.Amount, req.Description)
	if err != nil {
		if errors.Is(err, creditdomain.ErrInvalidAmount) {
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "valor inválido", err.Error()))
			return
		}
		c.logger.Error("erro ao criar crédito manual", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao criar crédito", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCreditResponse(cr))
}

// ApplyPayment aplica um pagamento aos créditos em aberto de um cliente
// @Summary Aplicar pagamento
// @Description Distribui o valor pago entre os créditos em aberto do cliente, do mais antigo para o mais novo. Valor acima do saldo devedor é rejeitado sem alterar nada.
// @Tags credits
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param user-id header string false "ID do usuário"
// @Param payment body dto.PaymentRequest true "Dados do pagamento"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /credits/payments [post]
func (c *CreditController) ApplyPayment(ctx *gin.Context) {
	var req dto.PaymentRequest
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

	result, err := c.ledger.ApplyPayment(ctx, branchID, actorID, req.CustomerID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, creditdomain.ErrInvalidAmount):
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "valor inválido", err.Error()))
		case errors.Is(err, creditdomain.ErrNoOpenCredits):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "cliente não possui créditos em aberto", err.Error()))
		case errors.Is(err, creditdomain.ErrOverpayment):
			ctx.JSON(http.StatusUnprocessableEntity, dto.NewErrorResponse(http.StatusUnprocessableEntity, "valor maior que o saldo devedor", err.Error()))
		default:
			c.logger.Error("erro ao aplicar pagamento", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao aplicar pagamento", err.Error()))
		}
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(result))
}

// ListByCustomer retorna os créditos em aberto de um cliente
// @Summary Listar créditos do cliente
// @Description Retorna os créditos em aberto do cliente com os totais agregados
// @Tags credits
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CreditListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/credits [get]
func (c *CreditController) ListByCustomer(ctx *gin.Context) {
	customerID := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	exists, err := c.customerRepo.Exists(ctx, branchID, customerID)
	if err != nil {
		c.logger.Error("erro ao verificar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao verificar cliente", err.Error()))
		return
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
		return
	}

	credits, err := c.ledger.OpenCreditsFor(ctx, branchID, customerID)
	if err != nil {
		c.logger.Error("erro ao listar créditos", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar créditos", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCreditListResponse(credits))
}

// Balance retorna o saldo devedor agregado de um cliente
// @Summary Saldo devedor do cliente
// @Description Retorna a soma dos saldos dos créditos em aberto do cliente
// @Tags credits
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/balance [get]
func (c *CreditController) Balance(ctx *gin.Context) {
	customerID := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	exists, err := c.customerRepo.Exists(ctx, branchID, customerID)
	if err != nil {
		c.logger.Error("erro ao verificar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao verificar cliente", err.Error()))
		return
	}
	if !exists {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", ""))
		return
	}

	balance, err := c.ledger.OutstandingBalance(ctx, branchID, customerID)
	if err != nil {
		c.logger.Error("erro ao calcular saldo devedor", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao calcular saldo", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.BalanceResponse{CustomerID: customerID, Balance: balance})
}
