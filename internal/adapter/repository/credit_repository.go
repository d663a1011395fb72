package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/credit"
)

const creditColumns = `id, branch_id, user_id, customer_id, order_number, description,
		amount_owed, amount_paid, balance, status, created_at, updated_at`

// CreditRepository implementa a interface credit.Repository
type CreditRepository struct {
	db *pgxpool.Pool
}

// NewCreditRepository cria uma nova instância de CreditRepository
func NewCreditRepository(db *pgxpool.Pool) credit.Repository {
	return &CreditRepository{
		db: db,
	}
}

// Create implementa credit.Repository.Create
func (r *CreditRepository) Create(ctx context.Context, c *credit.Credit) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`INSERT INTO credits (
			id, branch_id, user_id, customer_id, order_number, description,
			amount_owed, amount_paid, balance, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`,
		c.ID, c.BranchID, c.UserID, c.CustomerID, c.OrderNumber, c.Description,
		c.AmountOwed, c.AmountPaid, c.Balance, c.Status, c.CreatedAt, c.UpdatedAt)

	if err != nil {
		return fmt.Errorf("erro ao criar crédito: %w", err)
	}

	return nil
}

// FindByID implementa credit.Repository.FindByID
func (r *CreditRepository) FindByID(ctx context.Context, branchID, id string) (*credit.Credit, error) {
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+creditColumns+`
		FROM credits WHERE branch_id = $1 AND id = $2`,
		branchID, id)

	c, err := scanCredit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, credit.ErrCreditNotFound
		}
		return nil, fmt.Errorf("erro ao buscar crédito: %w", err)
	}

	return c, nil
}

// ExistsByOrderNumber implementa credit.Repository.ExistsByOrderNumber
func (r *CreditRepository) ExistsByOrderNumber(ctx context.Context, branchID, orderNumber string) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM credits WHERE branch_id = $1 AND order_number = $2)`,
		branchID, orderNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar crédito por número de pedido: %w", err)
	}

	return exists, nil
}

// OpenByCustomer implementa credit.Repository.OpenByCustomer
func (r *CreditRepository) OpenByCustomer(ctx context.Context, branchID, customerID string) ([]*credit.Credit, error) {
	return r.openByCustomer(ctx, branchID, customerID, false)
}

// OpenByCustomerForUpdate implementa credit.Repository.OpenByCustomerForUpdate
func (r *CreditRepository) OpenByCustomerForUpdate(ctx context.Context, branchID, customerID string) ([]*credit.Credit, error) {
	return r.openByCustomer(ctx, branchID, customerID, true)
}

func (r *CreditRepository) openByCustomer(ctx context.Context, branchID, customerID string, forUpdate bool) ([]*credit.Credit, error) {
	query := `SELECT ` + creditColumns + `
		FROM credits
		WHERE branch_id = $1 AND customer_id = $2 AND balance > 0
		ORDER BY created_at ASC, id ASC`
	if forUpdate {
		query += ` FOR UPDATE`
	}

	rows, err := querier(ctx, r.db).Query(ctx, query, branchID, customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar créditos em aberto: %w", err)
	}
	defer rows.Close()

	return scanCreditRows(rows)
}

// UpdateAllocation implementa credit.Repository.UpdateAllocation
func (r *CreditRepository) UpdateAllocation(ctx context.Context, c *credit.Credit) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE credits
		SET amount_paid = $1, balance = $2, status = $3, updated_at = $4
		WHERE branch_id = $5 AND id = $6`,
		c.AmountPaid, c.Balance, c.Status, c.UpdatedAt, c.BranchID, c.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar alocação do crédito: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return credit.ErrCreditNotFound
	}

	return nil
}

// ListByCustomer implementa credit.Repository.ListByCustomer
func (r *CreditRepository) ListByCustomer(ctx context.Context, branchID, customerID string, limit, offset int) ([]*credit.Credit, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+creditColumns+`
		FROM credits
		WHERE branch_id = $1 AND customer_id = $2
		ORDER BY created_at ASC, id ASC
		LIMIT $3 OFFSET $4`,
		branchID, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar créditos: %w", err)
	}
	defer rows.Close()

	return scanCreditRows(rows)
}

// ListByCustomerInPeriod implementa credit.Repository.ListByCustomerInPeriod
func (r *CreditRepository) ListByCustomerInPeriod(ctx context.Context, branchID, customerID string, from, to time.Time) ([]*credit.Credit, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+creditColumns+`
		FROM credits
		WHERE branch_id = $1 AND customer_id = $2 AND created_at BETWEEN $3 AND $4
		ORDER BY created_at DESC`,
		branchID, customerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar créditos do período: %w", err)
	}
	defer rows.Close()

	return scanCreditRows(rows)
}

// SumOpenBalance implementa credit.Repository.SumOpenBalance
func (r *CreditRepository) SumOpenBalance(ctx context.Context, branchID, customerID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0)
		FROM credits
		WHERE branch_id = $1 AND customer_id = $2 AND balance > 0`,
		branchID, customerID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao somar saldos em aberto: %w", err)
	}

	return sum, nil
}

// DeleteByCustomer implementa credit.Repository.DeleteByCustomer
func (r *CreditRepository) DeleteByCustomer(ctx context.Context, branchID, customerID string) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`DELETE FROM credits WHERE branch_id = $1 AND customer_id = $2`,
		branchID, customerID)
	if err != nil {
		return fmt.Errorf("erro ao remover créditos do cliente: %w", err)
	}

	return nil
}

func scanCredit(row pgx.Row) (*credit.Credit, error) {
	var c credit.Credit
	err := row.Scan(
		&c.ID, &c.BranchID, &c.UserID, &c.CustomerID, &c.OrderNumber, &c.Description,
		&c.AmountOwed, &c.AmountPaid, &c.Balance, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func scanCreditRows(rows pgx.Rows) ([]*credit.Credit, error) {
	var credits []*credit.Credit
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler crédito: %w", err)
		}
		credits = append(credits, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer créditos: %w", err)
	}

	return credits, nil
}
