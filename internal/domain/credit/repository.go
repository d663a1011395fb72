package credit

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de créditos
type Repository interface {
	// Create cria um novo crédito
	Create(ctx context.Context, c *Credit) error

	// FindByID busca um crédito pelo ID
	FindByID(ctx context.Context, branchID, id string) (*Credit, error)

	// ExistsByOrderNumber verifica se já existe crédito com o número de pedido
	ExistsByOrderNumber(ctx context.Context, branchID, orderNumber string) (bool, error)

	// OpenByCustomer retorna os créditos do cliente com saldo maior que zero
	OpenByCustomer(ctx context.Context, branchID, customerID string) ([]*Credit, error)

	// OpenByCustomerForUpdate retorna os créditos em aberto travando as linhas
	// para escrita (SELECT ... FOR UPDATE). Só tem efeito dentro de uma
	// transação; é o que serializa pagamentos concorrentes do mesmo cliente.
	OpenByCustomerForUpdate(ctx context.Context, branchID, customerID string) ([]*Credit, error)

	// UpdateAllocation persiste amount_paid, balance e status após uma alocação
	UpdateAllocation(ctx context.Context, c *Credit) error

	// ListByCustomer lista os créditos de um cliente, mais antigos primeiro
	ListByCustomer(ctx context.Context, branchID, customerID string, limit, offset int) ([]*Credit, error)

	// ListByCustomerInPeriod lista os créditos de um cliente no período [from, to]
	ListByCustomerInPeriod(ctx context.Context, branchID, customerID string, from, to time.Time) ([]*Credit, error)

	// SumOpenBalance soma os saldos em aberto de um cliente
	SumOpenBalance(ctx context.Context, branchID, customerID string) (decimal.Decimal, error)

	// DeleteByCustomer remove todos os créditos de um cliente
	DeleteByCustomer(ctx context.Context, branchID, customerID string) error
}

// TxRunner executa uma função dentro de uma transação: tudo que a função
// persistir usando o contexto recebido é confirmado ou desfeito em bloco
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}
