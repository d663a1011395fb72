package sale

import (
	"context"
	"time"
)

// Repository define a interface para operações de repositório de vendas
type Repository interface {
	// Create cria uma venda com seus itens na mesma transação
	Create(ctx context.Context, s *Sale) error

	// FindByID busca uma venda pelo ID, com itens
	FindByID(ctx context.Context, branchID, id string) (*Sale, error)

	// FindByOrderNumber busca uma venda pelo número do pedido
	FindByOrderNumber(ctx context.Context, branchID, orderNumber string) (*Sale, error)

	// List lista as vendas da filial com paginação, mais recentes primeiro
	List(ctx context.Context, branchID string, limit, offset int) ([]*Sale, error)

	// ListByCustomer lista as vendas de um cliente
	ListByCustomer(ctx context.Context, branchID, customerID string, limit, offset int) ([]*Sale, error)

	// ListByCustomerInPeriod lista as vendas de um cliente no período [from, to],
	// com itens, para a geração de extratos
	ListByCustomerInPeriod(ctx context.Context, branchID, customerID string, from, to time.Time) ([]*Sale, error)

	// UpdatePaymentStatus persiste a mudança de status de pagamento
	UpdatePaymentStatus(ctx context.Context, branchID, id string, status PaymentStatus) error

	// MarkPaidByOrderNumber marca como paga a venda em status "credit" com o
	// número de pedido informado. É chamado pelo alocador quando o crédito
	// de origem é quitado; não encontrar a venda não é erro (créditos manuais
	// não têm venda de origem).
	MarkPaidByOrderNumber(ctx context.Context, branchID, orderNumber string) error

	// DeleteCascade remove a venda e seus itens, itens primeiro
	DeleteCascade(ctx context.Context, branchID, id string) error

	// CountByBranch conta quantas vendas existem para uma filial
	CountByBranch(ctx context.Context, branchID string) (int, error)
}
