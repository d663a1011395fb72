package medicine

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de medicamentos
type Repository interface {
	// Create cria um novo medicamento
	Create(ctx context.Context, m *Medicine) error

	// FindByID busca um medicamento pelo ID
	FindByID(ctx context.Context, branchID, id string) (*Medicine, error)

	// List lista os medicamentos de uma filial com paginação
	List(ctx context.Context, branchID string, limit, offset int) ([]*Medicine, error)

	// ListInStock lista apenas medicamentos com estoque disponível
	ListInStock(ctx context.Context, branchID string, limit, offset int) ([]*Medicine, error)

	// Update atualiza os dados de um medicamento existente
	Update(ctx context.Context, m *Medicine) error

	// DeductStock abate a quantidade do estoque; falha se o saldo ficar negativo.
	// Deve ser chamado dentro da transação de criação da venda.
	DeductStock(ctx context.Context, branchID, id string, quantity decimal.Decimal) error

	// Delete remove um medicamento
	Delete(ctx context.Context, branchID, id string) error

	// CountByBranch conta quantos medicamentos existem para uma filial
	CountByBranch(ctx context.Context, branchID string) (int, error)
}
