package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/farmacia-pos/internal/domain/customer"
)

// Erros específicos do repositório de clientes
var (
	ErrCustomerNotFound = errors.New("cliente não encontrado")
)

const customerColumns = `id, branch_id, name, email, phone, address, created_at, updated_at`

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db *pgxpool.Pool
	tx *TxManager
}

// NewCustomerRepository cria uma nova instância de CustomerRepository
func NewCustomerRepository(db *pgxpool.Pool, tx *TxManager) customer.Repository {
	return &CustomerRepository{
		db: db,
		tx: tx,
	}
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`INSERT INTO customers (
			id, branch_id, name, email, phone, address, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)`,
		c.ID, c.BranchID, c.Name, c.Email, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}

	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, branchID, id string) (*customer.Customer, error) {
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+customerColumns+`
		FROM customers WHERE branch_id = $1 AND id = $2`,
		branchID, id)

	c, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}

	return c, nil
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, branchID string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+customerColumns+`
		FROM customers
		WHERE branch_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	return scanCustomerRows(rows)
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE customers
		SET name = $1, email = $2, phone = $3, address = $4, updated_at = $5
		WHERE branch_id = $6 AND id = $7`,
		c.Name, c.Email, c.Phone, c.Address, c.UpdatedAt, c.BranchID, c.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// DeleteCascade implementa customer.Repository.DeleteCascade.
// A ordem de remoção é um requisito de correção, não conveniência:
// itens de venda -> vendas -> créditos -> cliente. Qualquer falha
// aborta a transação inteira.
func (r *CustomerRepository) DeleteCascade(ctx context.Context, branchID, id string) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := querier(ctx, r.db)

		_, err := q.Exec(ctx,
			`DELETE FROM sale_items
			WHERE sale_id IN (SELECT id FROM sales WHERE branch_id = $1 AND customer_id = $2)`,
			branchID, id)
		if err != nil {
			return fmt.Errorf("erro ao remover itens de venda do cliente: %w", err)
		}

		_, err = q.Exec(ctx,
			`DELETE FROM sales WHERE branch_id = $1 AND customer_id = $2`,
			branchID, id)
		if err != nil {
			return fmt.Errorf("erro ao remover vendas do cliente: %w", err)
		}

		_, err = q.Exec(ctx,
			`DELETE FROM credits WHERE branch_id = $1 AND customer_id = $2`,
			branchID, id)
		if err != nil {
			return fmt.Errorf("erro ao remover créditos do cliente: %w", err)
		}

		tag, err := q.Exec(ctx,
			`DELETE FROM customers WHERE branch_id = $1 AND id = $2`,
			branchID, id)
		if err != nil {
			return fmt.Errorf("erro ao remover cliente: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrCustomerNotFound
		}

		return nil
	})
}

// CountByBranch implementa customer.Repository.CountByBranch
func (r *CustomerRepository) CountByBranch(ctx context.Context, branchID string) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM customers WHERE branch_id = $1`,
		branchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar clientes: %w", err)
	}

	return count, nil
}

// Exists implementa customer.Repository.Exists
func (r *CustomerRepository) Exists(ctx context.Context, branchID, id string) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM customers WHERE branch_id = $1 AND id = $2)`,
		branchID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do cliente: %w", err)
	}

	return exists, nil
}

// FindByName implementa customer.Repository.FindByName
func (r *CustomerRepository) FindByName(ctx context.Context, branchID, name string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+customerColumns+`
		FROM customers
		WHERE branch_id = $1 AND name ILIKE $2
		ORDER BY name ASC
		LIMIT $3 OFFSET $4`,
		branchID, "%"+name+"%", limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar clientes por nome: %w", err)
	}
	defer rows.Close()

	return scanCustomerRows(rows)
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.BranchID, &c.Name, &c.Email, &c.Phone, &c.Address,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCustomerRows(rows pgx.Rows) ([]*customer.Customer, error) {
	var customers []*customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer clientes: %w", err)
	}

	return customers, nil
}
