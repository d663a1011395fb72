package controller

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/repository"
	creditdomain "github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	customerdomain "github.com/hugohenrick/farmacia-pos/internal/domain/customer"
	saledomain "github.com/hugohenrick/farmacia-pos/internal/domain/sale"
	"github.com/hugohenrick/farmacia-pos/internal/domain/statement"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

const statementDateLayout = "2006-01-02"

// StatementController gera extratos de clientes em PDF ou CSV
type StatementController struct {
	customerRepo customerdomain.Repository
	saleRepo     saledomain.Repository
	creditRepo   creditdomain.Repository
	renderers    map[statement.Format]statement.Renderer
	logger       logger.Logger
}

// NewStatementController cria uma nova instância de StatementController
func NewStatementController(
	customerRepo customerdomain.Repository,
	saleRepo saledomain.Repository,
	creditRepo creditdomain.Repository,
	renderers map[statement.Format]statement.Renderer,
	logger logger.Logger,
) *StatementController {
	return &StatementController{
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		creditRepo:   creditRepo,
		renderers:    renderers,
		logger:       logger,
	}
}

// Download gera o extrato do cliente no período informado
// @Summary Extrato do cliente
// @Description Gera o extrato de vendas e/ou créditos do cliente no período, para download em PDF ou CSV
// @Tags statements
// @Accept json
// @Produce application/pdf
// @Produce text/csv
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do cliente"
// @Param report_type query string true "Tipo de relatório: sales, credits ou both"
// @Param start_date query string true "Data inicial (AAAA-MM-DD)"
// @Param end_date query string true "Data final (AAAA-MM-DD)"
// @Param format query string false "Formato: pdf (padrão) ou csv"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id}/statements [get]
func (c *StatementController) Download(ctx *gin.Context) {
	customerID := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	reportType, err := statement.ParseReportType(ctx.Query("report_type"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "tipo de relatório inválido", err.Error()))
		return
	}

	format, err := statement.ParseFormat(ctx.DefaultQuery("format", string(statement.FormatPDF)))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "formato inválido", err.Error()))
		return
	}

	start, err := time.Parse(statementDateLayout, ctx.Query("start_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "data inicial inválida", err.Error()))
		return
	}
	end, err := time.Parse(statementDateLayout, ctx.Query("end_date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "data final inválida", err.Error()))
		return
	}

	period, err := statement.NewPeriod(start, end)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "período inválido", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, branchID, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	var sales []*saledomain.Sale
	if reportType.IncludesSales() {
		sales, err = c.saleRepo.ListByCustomerInPeriod(ctx, branchID, customerID, period.Start, period.End)
		if err != nil {
			c.logger.Error("erro ao buscar vendas do período", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar vendas", err.Error()))
			return
		}
	}

	var credits []*creditdomain.Credit
	if reportType.IncludesCredits() {
		credits, err = c.creditRepo.ListByCustomerInPeriod(ctx, branchID, customerID, period.Start, period.End)
		if err != nil {
			c.logger.Error("erro ao buscar créditos do período", "error", err)
			ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar créditos", err.Error()))
			return
		}
	}

	st := statement.Build(cust, period, reportType, sales, credits)

	renderer, ok := c.renderers[format]
	if !ok {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "formato não suportado", string(format)))
		return
	}

	content, contentType, err := renderer.Render(st)
	if err != nil {
		c.logger.Error("erro ao gerar extrato", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao gerar extrato", err.Error()))
		return
	}

	filename := fmt.Sprintf("extrato-%s-%s-%s.%s",
		cust.ID,
		period.Start.Format(statementDateLayout),
		period.End.Format(statementDateLayout),
		format,
	)
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, contentType, content)
}
