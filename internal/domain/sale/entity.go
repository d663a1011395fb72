package sale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCustomer       = errors.New("cliente não informado")
	ErrNoItems             = errors.New("venda precisa de ao menos um item")
	ErrInvalidQuantity     = errors.New("quantidade do item deve ser maior que zero")
	ErrInvalidPrice        = errors.New("preço do item não pode ser negativo")
	ErrInvalidStatus       = errors.New("status de pagamento inválido")
	ErrStatusLocked        = errors.New("vendas pagas ou em crédito não podem mudar de status")
	ErrAlreadyCredited     = errors.New("venda já convertida em crédito")
	ErrTotalAmountMismatch = errors.New("valor informado difere do total da venda")
)

// PaymentStatus representa o estado de pagamento da venda
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPaid    PaymentStatus = "paid"
	PaymentCredit  PaymentStatus = "credit"
)

// ValidPaymentStatus verifica se o status informado é conhecido
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentUnpaid, PaymentPaid, PaymentCredit:
		return true
	}
	return false
}

// Item representa um item de venda: o preço unitário e o total da linha são
// congelados no momento da venda, independentes de reajustes futuros do medicamento
type Item struct {
	ID         string          `json:"id"`
	SaleID     string          `json:"sale_id"`
	MedicineID string          `json:"medicine_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Sale representa uma venda para um cliente.
// TotalAmount é a soma de preço x quantidade dos itens no momento da criação
// e nunca é recalculado depois.
type Sale struct {
	ID            string          `json:"id"`
	BranchID      string          `json:"branch_id"`
	UserID        string          `json:"user_id"`
	CustomerID    string          `json:"customer_id"`
	OrderNumber   string          `json:"order_number"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	Items         []Item          `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ItemInput são os dados de entrada de um item de venda
type ItemInput struct {
	MedicineID string
	Quantity   decimal.Decimal
	Price      decimal.Decimal
}

// NewSale cria uma nova venda com seus itens, calculando o total a partir das linhas
func NewSale(branchID, userID, customerID string, items []ItemInput) (*Sale, error) {
	if customerID == "" {
		return nil, ErrEmptyCustomer
	}
	if len(items) == 0 {
		return nil, ErrNoItems
	}

	now := time.Now()
	s := &Sale{
		ID:            uuid.New().String(),
		BranchID:      branchID,
		UserID:        userID,
		CustomerID:    customerID,
		OrderNumber:   newOrderNumber(),
		TotalAmount:   decimal.Zero,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	for _, in := range items {
		if in.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, ErrInvalidQuantity
		}
		if in.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}

		lineTotal := in.Price.Mul(in.Quantity)
		s.Items = append(s.Items, Item{
			ID:         uuid.New().String(),
			SaleID:     s.ID,
			MedicineID: in.MedicineID,
			Quantity:   in.Quantity,
			Price:      in.Price,
			Total:      lineTotal,
			CreatedAt:  now,
		})
		s.TotalAmount = s.TotalAmount.Add(lineTotal)
	}

	return s, nil
}

// TransitionPaymentStatus aplica a mudança de status de pagamento.
// Vendas em "paid" ou "credit" são terminais para alteração direta:
// "credit" acontece no máximo uma vez e "paid" só é atingido pela
// quitação do crédito vinculado.
func (s *Sale) TransitionPaymentStatus(status PaymentStatus) error {
	if !ValidPaymentStatus(status) {
		return ErrInvalidStatus
	}
	if s.PaymentStatus == PaymentPaid || s.PaymentStatus == PaymentCredit {
		return ErrStatusLocked
	}

	s.PaymentStatus = status
	s.UpdatedAt = time.Now()
	return nil
}

// newOrderNumber gera o identificador de exibição da venda
func newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", time.Now().Format("20060102"), suffix)
}
