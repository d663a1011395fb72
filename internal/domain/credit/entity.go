package credit

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/sale"
)

// Status representa o estado de quitação do crédito
type Status string

const (
	StatusUnpaid        Status = "unpaid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
)

// Prefixos de número de pedido para créditos que não nascem de uma venda.
// Mantêm o espaço de nomes separado dos pedidos de venda (ORD-...), de modo
// que a vinculação crédito->venda por order_number nunca case por engano.
const (
	manualOrderPrefix  = "MANUAL-CREDIT-"
	receiptOrderPrefix = "PAYMENT-"
)

// Credit representa um lançamento no livro de créditos: um valor devido por
// um cliente (a partir de uma venda a crédito ou de um crédito manual) ou,
// no caso de recibos de pagamento, o registro histórico de uma quitação.
//
// Invariantes mantidas por todas as operações:
//   - Balance == AmountOwed - AmountPaid, sempre recalculado, nunca negativo
//   - Status == "paid" se e somente se Balance == 0
//   - Status == "unpaid" se e somente se AmountPaid == 0
//   - AmountPaid é monotonicamente não decrescente
type Credit struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	UserID      string          `json:"user_id"`
	CustomerID  string          `json:"customer_id"`
	OrderNumber string          `json:"order_number"`
	Description string          `json:"description"`
	AmountOwed  decimal.Decimal `json:"amount_owed"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Balance     decimal.Decimal `json:"balance"`
	Status      Status          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewFromSale cria o crédito de origem de uma venda marcada como "credit".
// O valor devido é sempre o total da venda; amount é recebido separadamente
// apenas para flagrar divergência do chamador.
func NewFromSale(branchID, userID string, s *sale.Sale, amount decimal.Decimal) (*Credit, error) {
	if s.PaymentStatus != sale.PaymentCredit {
		return nil, fmt.Errorf("%w: venda %s está em %q", ErrSaleNotCredit, s.OrderNumber, s.PaymentStatus)
	}
	if !amount.Equal(s.TotalAmount) {
		return nil, fmt.Errorf("%w: informado %s, total da venda %s",
			ErrAmountMismatch, amount.String(), s.TotalAmount.String())
	}

	now := time.Now()
	return &Credit{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		UserID:      userID,
		CustomerID:  s.CustomerID,
		OrderNumber: s.OrderNumber,
		AmountOwed:  amount,
		AmountPaid:  decimal.Zero,
		Balance:     amount,
		Status:      StatusUnpaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewManual cria um crédito avulso, sem venda de origem
func NewManual(branchID, userID, customerID string, amount decimal.Decimal, description string) (*Credit, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	now := time.Now()
	return &Credit{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		UserID:      userID,
		CustomerID:  customerID,
		OrderNumber: manualOrderPrefix + now.Format("20060102150405") + "-" + orderSuffix(),
		Description: description,
		AmountOwed:  amount,
		AmountPaid:  decimal.Zero,
		Balance:     amount,
		Status:      StatusUnpaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewPaymentReceipt cria o registro de auditoria de um pagamento: um crédito
// já quitado, com saldo zero, que nunca entra no conjunto de alocação
func NewPaymentReceipt(branchID, userID, customerID string, amount decimal.Decimal) *Credit {
	now := time.Now()
	return &Credit{
		ID:          uuid.New().String(),
		BranchID:    branchID,
		UserID:      userID,
		CustomerID:  customerID,
		OrderNumber: fmt.Sprintf("%s%d-%s", receiptOrderPrefix, now.Unix(), orderSuffix()),
		Description: "payment received",
		AmountOwed:  amount,
		AmountPaid:  amount,
		Balance:     decimal.Zero,
		Status:      StatusPaid,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply abate até amount do saldo do crédito e devolve o valor efetivamente
// aplicado. O saldo é recalculado a partir de AmountOwed - AmountPaid, e não
// apenas decrementado, para não acumular deriva.
func (c *Credit) Apply(amount decimal.Decimal) decimal.Decimal {
	applied := decimal.Min(c.Balance, amount)
	if applied.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	c.AmountPaid = c.AmountPaid.Add(applied)
	c.Balance = c.AmountOwed.Sub(c.AmountPaid)
	c.Status = statusFor(c.AmountPaid, c.Balance)
	c.UpdatedAt = time.Now()
	return applied
}

// Settled indica se o crédito foi quitado
func (c *Credit) Settled() bool {
	return c.Balance.IsZero()
}

// HasSaleOrigin indica se o crédito nasceu de uma venda: números sintetizados
// de créditos manuais e recibos não têm venda correspondente
func (c *Credit) HasSaleOrigin() bool {
	return !strings.HasPrefix(c.OrderNumber, manualOrderPrefix) &&
		!strings.HasPrefix(c.OrderNumber, receiptOrderPrefix)
}

// orderSuffix gera o sufixo aleatório dos números sintetizados. O carimbo de
// tempo sozinho colide sob a restrição de unicidade por filial quando dois
// lançamentos acontecem no mesmo segundo.
func orderSuffix() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

func statusFor(amountPaid, balance decimal.Decimal) Status {
	switch {
	case balance.IsZero():
		return StatusPaid
	case amountPaid.IsZero():
		return StatusUnpaid
	default:
		return StatusPartiallyPaid
	}
}
