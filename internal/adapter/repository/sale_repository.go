package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	"github.com/hugohenrick/farmacia-pos/internal/domain/sale"
)

// Erros específicos do repositório de vendas
var (
	ErrSaleNotFound = errors.New("venda não encontrada")
)

const saleColumns = `id, branch_id, user_id, customer_id, order_number,
		total_amount, payment_status, created_at, updated_at`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db DB
	tx credit.TxRunner
}

// NewSaleRepository cria uma nova instância de SaleRepository
func NewSaleRepository(db *pgxpool.Pool, tx *TxManager) sale.Repository {
	return &SaleRepository{
		db: db,
		tx: tx,
	}
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	q := querier(ctx, r.db)

	_, err := q.Exec(ctx,
		`INSERT INTO sales (
			id, branch_id, user_id, customer_id, order_number,
			total_amount, payment_status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)`,
		s.ID, s.BranchID, s.UserID, s.CustomerID, s.OrderNumber,
		s.TotalAmount, s.PaymentStatus, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar venda: %w", err)
	}

	for _, item := range s.Items {
		_, err := q.Exec(ctx,
			`INSERT INTO sale_items (
				id, sale_id, medicine_id, quantity, price, total, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7
			)`,
			item.ID, item.SaleID, item.MedicineID, item.Quantity, item.Price, item.Total, item.CreatedAt)
		if err != nil {
			return fmt.Errorf("erro ao criar item da venda: %w", err)
		}
	}

	return nil
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, branchID, id string) (*sale.Sale, error) {
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+saleColumns+`
		FROM sales WHERE branch_id = $1 AND id = $2`,
		branchID, id)

	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	if err := r.loadItems(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// FindByOrderNumber implementa sale.Repository.FindByOrderNumber
func (r *SaleRepository) FindByOrderNumber(ctx context.Context, branchID, orderNumber string) (*sale.Sale, error) {
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+saleColumns+`
		FROM sales WHERE branch_id = $1 AND order_number = $2`,
		branchID, orderNumber)

	s, err := scanSale(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda por número de pedido: %w", err)
	}

	if err := r.loadItems(ctx, s); err != nil {
		return nil, err
	}

	return s, nil
}

// List implementa sale.Repository.List
func (r *SaleRepository) List(ctx context.Context, branchID string, limit, offset int) ([]*sale.Sale, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+saleColumns+`
		FROM sales
		WHERE branch_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}
	defer rows.Close()

	return scanSaleRows(rows)
}

// ListByCustomer implementa sale.Repository.ListByCustomer
func (r *SaleRepository) ListByCustomer(ctx context.Context, branchID, customerID string, limit, offset int) ([]*sale.Sale, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+saleColumns+`
		FROM sales
		WHERE branch_id = $1 AND customer_id = $2
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4`,
		branchID, customerID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas do cliente: %w", err)
	}
	defer rows.Close()

	return scanSaleRows(rows)
}

// ListByCustomerInPeriod implementa sale.Repository.ListByCustomerInPeriod
func (r *SaleRepository) ListByCustomerInPeriod(ctx context.Context, branchID, customerID string, from, to time.Time) ([]*sale.Sale, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+saleColumns+`
		FROM sales
		WHERE branch_id = $1 AND customer_id = $2 AND created_at BETWEEN $3 AND $4
		ORDER BY created_at DESC`,
		branchID, customerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas do período: %w", err)
	}
	defer rows.Close()

	sales, err := scanSaleRows(rows)
	if err != nil {
		return nil, err
	}

	for _, s := range sales {
		if err := r.loadItems(ctx, s); err != nil {
			return nil, err
		}
	}

	return sales, nil
}

// UpdatePaymentStatus implementa sale.Repository.UpdatePaymentStatus
func (r *SaleRepository) UpdatePaymentStatus(ctx context.Context, branchID, id string, status sale.PaymentStatus) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE sales SET payment_status = $1, updated_at = $2
		WHERE branch_id = $3 AND id = $4`,
		status, time.Now(), branchID, id)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status de pagamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSaleNotFound
	}

	return nil
}

// MarkPaidByOrderNumber implementa sale.Repository.MarkPaidByOrderNumber
func (r *SaleRepository) MarkPaidByOrderNumber(ctx context.Context, branchID, orderNumber string) error {
	// Créditos manuais e recibos não têm venda correspondente: zero linhas
	// afetadas não é erro aqui
	_, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE sales SET payment_status = $1, updated_at = $2
		WHERE branch_id = $3 AND order_number = $4 AND payment_status = $5`,
		sale.PaymentPaid, time.Now(), branchID, orderNumber, sale.PaymentCredit)
	if err != nil {
		return fmt.Errorf("erro ao baixar venda por número de pedido: %w", err)
	}

	return nil
}

// DeleteCascade implementa sale.Repository.DeleteCascade: itens primeiro,
// depois a venda, na mesma transação. Inverter a ordem viola a integridade
// referencial; sem a transação, uma falha entre os dois DELETEs deixaria a
// venda sem seus itens.
func (r *SaleRepository) DeleteCascade(ctx context.Context, branchID, id string) error {
	return r.tx.WithinTx(ctx, func(ctx context.Context) error {
		q := querier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, id); err != nil {
			return fmt.Errorf("erro ao remover itens da venda: %w", err)
		}

		tag, err := q.Exec(ctx, `DELETE FROM sales WHERE branch_id = $1 AND id = $2`, branchID, id)
		if err != nil {
			return fmt.Errorf("erro ao remover venda: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return ErrSaleNotFound
		}

		return nil
	})
}

// CountByBranch implementa sale.Repository.CountByBranch
func (r *SaleRepository) CountByBranch(ctx context.Context, branchID string) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM sales WHERE branch_id = $1`,
		branchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar vendas: %w", err)
	}

	return count, nil
}

func (r *SaleRepository) loadItems(ctx context.Context, s *sale.Sale) error {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT id, sale_id, medicine_id, quantity, price, total, created_at
		FROM sale_items WHERE sale_id = $1
		ORDER BY created_at ASC`,
		s.ID)
	if err != nil {
		return fmt.Errorf("erro ao buscar itens da venda: %w", err)
	}
	defer rows.Close()

	s.Items = nil
	for rows.Next() {
		var item sale.Item
		if err := rows.Scan(&item.ID, &item.SaleID, &item.MedicineID,
			&item.Quantity, &item.Price, &item.Total, &item.CreatedAt); err != nil {
			return fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		s.Items = append(s.Items, item)
	}

	return rows.Err()
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	err := row.Scan(
		&s.ID, &s.BranchID, &s.UserID, &s.CustomerID, &s.OrderNumber,
		&s.TotalAmount, &s.PaymentStatus, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSaleRows(rows pgx.Rows) ([]*sale.Sale, error) {
	var sales []*sale.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer vendas: %w", err)
	}

	return sales, nil
}
