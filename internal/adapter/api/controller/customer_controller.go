package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/dto"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/repository"
	customerdomain "github.com/hugohenrick/farmacia-pos/internal/domain/customer"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	customerRepo customerdomain.Repository
	logger       logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(customerRepo customerdomain.Repository, logger logger.Logger) *CustomerController {
	return &CustomerController{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente na filial corrente
// @Tags customers
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	branchID := ctx.GetString("branch_id")

	cust, err := customerdomain.NewCustomer(branchID, req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao criar cliente", err.Error()))
		return
	}

	if err := c.customerRepo.Create(ctx, cust); err != nil {
		c.logger.Error("erro ao criar cliente no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(cust))
}

// Get retorna um cliente pelo ID
// @Summary Buscar cliente
// @Description Retorna os dados de um cliente pelo ID
// @Tags customers
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	cust, err := c.customerRepo.FindByID(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// List retorna a lista de clientes
// @Summary Listar clientes
// @Description Retorna a lista de clientes da filial, paginada
// @Tags customers
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param page query int false "Número da página"
// @Param size query int false "Tamanho da página"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	branchID := ctx.GetString("branch_id")

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	customers, err := c.customerRepo.List(ctx, branchID, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao listar clientes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao listar clientes", err.Error()))
		return
	}

	total, err := c.customerRepo.CountByBranch(ctx, branchID)
	if err != nil {
		c.logger.Error("erro ao contar clientes", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao contar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers, total, pagination.Page, pagination.PageSize))
}

// Update atualiza os dados de um cliente
// @Summary Atualizar cliente
// @Description Atualiza os dados de um cliente existente
// @Tags customers
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error()))
		return
	}

	cust, err := c.customerRepo.FindByID(ctx, branchID, id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao buscar cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar cliente", err.Error()))
		return
	}

	if err := cust.Update(req.Name, req.Email, req.Phone, req.Address); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "erro ao atualizar cliente", err.Error()))
		return
	}

	if err := c.customerRepo.Update(ctx, cust); err != nil {
		c.logger.Error("erro ao atualizar cliente no banco de dados", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao salvar cliente", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// Delete remove um cliente e seus registros dependentes
// @Summary Remover cliente
// @Description Remove um cliente em cascata: itens de venda, vendas e créditos são removidos antes do cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param id path string true "ID do cliente"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [delete]
func (c *CustomerController) Delete(ctx *gin.Context) {
	id := ctx.Param("id")
	branchID := ctx.GetString("branch_id")

	if err := c.customerRepo.DeleteCascade(ctx, branchID, id); err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "cliente não encontrado", err.Error()))
			return
		}
		c.logger.Error("erro ao remover cliente", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao remover cliente", err.Error()))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// FindByName busca clientes pelo nome
// @Summary Buscar clientes por nome
// @Description Retorna os clientes cujo nome contém o termo informado
// @Tags customers
// @Accept json
// @Produce json
// @Param branch-id header string true "ID da filial"
// @Param name query string true "Termo de busca"
// @Success 200 {object} dto.CustomerListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/search [get]
func (c *CustomerController) FindByName(ctx *gin.Context) {
	branchID := ctx.GetString("branch_id")

	name := ctx.Query("name")
	if name == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "termo de busca não informado", ""))
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(ctx.DefaultQuery("size", "10"))
	pagination := dto.GetPagination(page, size)

	customers, err := c.customerRepo.FindByName(ctx, branchID, name, pagination.PageSize, pagination.Offset())
	if err != nil {
		c.logger.Error("erro ao buscar clientes por nome", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "erro ao buscar clientes", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(customers, len(customers), pagination.Page, pagination.PageSize))
}
