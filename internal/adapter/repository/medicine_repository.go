package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/medicine"
)

// Erros específicos do repositório de medicamentos
var (
	ErrMedicineNotFound = errors.New("medicamento não encontrado")
)

const medicineColumns = `id, branch_id, name, description, batch_no, buying_price,
		selling_price, stock_quantity, measurement_unit, expiry_date, created_at, updated_at`

// MedicineRepository implementa a interface medicine.Repository
type MedicineRepository struct {
	db *pgxpool.Pool
}

// NewMedicineRepository cria uma nova instância de MedicineRepository
func NewMedicineRepository(db *pgxpool.Pool) medicine.Repository {
	return &MedicineRepository{
		db: db,
	}
}

// Create implementa medicine.Repository.Create
func (r *MedicineRepository) Create(ctx context.Context, m *medicine.Medicine) error {
	_, err := querier(ctx, r.db).Exec(ctx,
		`INSERT INTO medicines (
			id, branch_id, name, description, batch_no, buying_price,
			selling_price, stock_quantity, measurement_unit, expiry_date,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12
		)`,
		m.ID, m.BranchID, m.Name, m.Description, m.BatchNo, m.BuyingPrice,
		m.SellingPrice, m.StockQuantity, m.MeasurementUnit, m.ExpiryDate,
		m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar medicamento: %w", err)
	}

	return nil
}

// FindByID implementa medicine.Repository.FindByID
func (r *MedicineRepository) FindByID(ctx context.Context, branchID, id string) (*medicine.Medicine, error) {
	row := querier(ctx, r.db).QueryRow(ctx,
		`SELECT `+medicineColumns+`
		FROM medicines WHERE branch_id = $1 AND id = $2`,
		branchID, id)

	m, err := scanMedicine(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMedicineNotFound
		}
		return nil, fmt.Errorf("erro ao buscar medicamento: %w", err)
	}

	return m, nil
}

// List implementa medicine.Repository.List
func (r *MedicineRepository) List(ctx context.Context, branchID string, limit, offset int) ([]*medicine.Medicine, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+medicineColumns+`
		FROM medicines
		WHERE branch_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar medicamentos: %w", err)
	}
	defer rows.Close()

	return scanMedicineRows(rows)
}

// ListInStock implementa medicine.Repository.ListInStock
func (r *MedicineRepository) ListInStock(ctx context.Context, branchID string, limit, offset int) ([]*medicine.Medicine, error) {
	rows, err := querier(ctx, r.db).Query(ctx,
		`SELECT `+medicineColumns+`
		FROM medicines
		WHERE branch_id = $1 AND stock_quantity > 0
		ORDER BY name ASC
		LIMIT $2 OFFSET $3`,
		branchID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar medicamentos em estoque: %w", err)
	}
	defer rows.Close()

	return scanMedicineRows(rows)
}

// Update implementa medicine.Repository.Update
func (r *MedicineRepository) Update(ctx context.Context, m *medicine.Medicine) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE medicines
		SET name = $1, description = $2, batch_no = $3, buying_price = $4,
			selling_price = $5, stock_quantity = $6, measurement_unit = $7,
			expiry_date = $8, updated_at = $9
		WHERE branch_id = $10 AND id = $11`,
		m.Name, m.Description, m.BatchNo, m.BuyingPrice, m.SellingPrice,
		m.StockQuantity, m.MeasurementUnit, m.ExpiryDate, m.UpdatedAt,
		m.BranchID, m.ID)
	if err != nil {
		return fmt.Errorf("erro ao atualizar medicamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMedicineNotFound
	}

	return nil
}

// DeductStock implementa medicine.Repository.DeductStock. A condição
// stock_quantity >= quantidade no UPDATE impede saldo negativo mesmo
// sob vendas concorrentes.
func (r *MedicineRepository) DeductStock(ctx context.Context, branchID, id string, quantity decimal.Decimal) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`UPDATE medicines
		SET stock_quantity = stock_quantity - $1, updated_at = NOW()
		WHERE branch_id = $2 AND id = $3 AND stock_quantity >= $1`,
		quantity, branchID, id)
	if err != nil {
		return fmt.Errorf("erro ao abater estoque: %w", err)
	}
	if tag.RowsAffected() == 0 {
		exists, existsErr := r.exists(ctx, branchID, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return ErrMedicineNotFound
		}
		return medicine.ErrInsufficientStock
	}

	return nil
}

// Delete implementa medicine.Repository.Delete
func (r *MedicineRepository) Delete(ctx context.Context, branchID, id string) error {
	tag, err := querier(ctx, r.db).Exec(ctx,
		`DELETE FROM medicines WHERE branch_id = $1 AND id = $2`,
		branchID, id)
	if err != nil {
		return fmt.Errorf("erro ao remover medicamento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMedicineNotFound
	}

	return nil
}

// CountByBranch implementa medicine.Repository.CountByBranch
func (r *MedicineRepository) CountByBranch(ctx context.Context, branchID string) (int, error) {
	var count int
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM medicines WHERE branch_id = $1`,
		branchID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("erro ao contar medicamentos: %w", err)
	}

	return count, nil
}

func (r *MedicineRepository) exists(ctx context.Context, branchID, id string) (bool, error) {
	var exists bool
	err := querier(ctx, r.db).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM medicines WHERE branch_id = $1 AND id = $2)`,
		branchID, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("erro ao verificar existência do medicamento: %w", err)
	}
	return exists, nil
}

func scanMedicine(row pgx.Row) (*medicine.Medicine, error) {
	var m medicine.Medicine
	err := row.Scan(&m.ID, &m.BranchID, &m.Name, &m.Description, &m.BatchNo,
		&m.BuyingPrice, &m.SellingPrice, &m.StockQuantity, &m.MeasurementUnit,
		&m.ExpiryDate, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMedicineRows(rows pgx.Rows) ([]*medicine.Medicine, error) {
	var medicines []*medicine.Medicine
	for rows.Next() {
		m, err := scanMedicine(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler medicamento: %w", err)
		}
		medicines = append(medicines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao percorrer medicamentos: %w", err)
	}

	return medicines, nil
}
