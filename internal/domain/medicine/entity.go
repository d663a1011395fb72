package medicine

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName            = errors.New("nome não pode ser vazio")
	ErrInvalidPrice         = errors.New("preço de venda deve ser maior que zero")
	ErrInvalidStockQuantity = errors.New("quantidade em estoque não pode ser negativa")
	ErrInsufficientStock    = errors.New("estoque insuficiente")
)

// Medicine representa um medicamento do estoque da filial.
// Quantidades são decimais porque a venda fracionada é permitida
// (por exemplo, meio frasco ou um quarto de cartela).
type Medicine struct {
	ID              string          `json:"id"`
	BranchID        string          `json:"branch_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BatchNo         string          `json:"batch_no"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	StockQuantity   decimal.Decimal `json:"stock_quantity"`
	MeasurementUnit string          `json:"measurement_unit"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// NewMedicine cria um novo medicamento
func NewMedicine(branchID, name string, buyingPrice, sellingPrice, stockQuantity decimal.Decimal) (*Medicine, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if stockQuantity.IsNegative() {
		return nil, ErrInvalidStockQuantity
	}

	now := time.Now()
	return &Medicine{
		ID:            uuid.New().String(),
		BranchID:      branchID,
		Name:          name,
		BuyingPrice:   buyingPrice,
		SellingPrice:  sellingPrice,
		StockQuantity: stockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Update atualiza os dados cadastrais do medicamento
func (m *Medicine) Update(name string, buyingPrice, sellingPrice, stockQuantity decimal.Decimal) error {
	if name == "" {
		return ErrEmptyName
	}
	if sellingPrice.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidPrice
	}
	if stockQuantity.IsNegative() {
		return ErrInvalidStockQuantity
	}

	m.Name = name
	m.BuyingPrice = buyingPrice
	m.SellingPrice = sellingPrice
	m.StockQuantity = stockQuantity
	m.UpdatedAt = time.Now()
	return nil
}

// InStock verifica se há estoque disponível
func (m *Medicine) InStock() bool {
	return m.StockQuantity.GreaterThan(decimal.Zero)
}

// DeductStock abate a quantidade vendida do estoque
func (m *Medicine) DeductStock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStockQuantity
	}
	if quantity.GreaterThan(m.StockQuantity) {
		return ErrInsufficientStock
	}

	m.StockQuantity = m.StockQuantity.Sub(quantity)
	m.UpdatedAt = time.Now()
	return nil
}

// Restock adiciona quantidade ao estoque
func (m *Medicine) Restock(quantity decimal.Decimal) error {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidStockQuantity
	}

	m.StockQuantity = m.StockQuantity.Add(quantity)
	m.UpdatedAt = time.Now()
	return nil
}
