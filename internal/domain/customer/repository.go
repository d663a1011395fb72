package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes.
// Todas as consultas recebem o branchID explicitamente: o escopo de filial
// nunca é lido de estado global.
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, branchID, id string) (*Customer, error)

	// List lista os clientes de uma filial com paginação
	List(ctx context.Context, branchID string, limit, offset int) ([]*Customer, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error

	// DeleteCascade remove um cliente e seus registros dependentes na ordem
	// itens de venda -> vendas -> créditos -> cliente, em uma única transação
	DeleteCascade(ctx context.Context, branchID, id string) error

	// CountByBranch conta quantos clientes existem para uma filial
	CountByBranch(ctx context.Context, branchID string) (int, error)

	// Exists verifica se um cliente existe
	Exists(ctx context.Context, branchID, id string) (bool, error)

	// FindByName busca clientes pelo nome
	FindByName(ctx context.Context, branchID, name string, limit, offset int) ([]*Customer, error)
}
