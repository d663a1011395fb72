package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/credit"
)

// ManualCreditRequest representa a requisição de crédito manual
type ManualCreditRequest struct {
	CustomerID  string          `json:"customer_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// PaymentRequest representa a requisição de pagamento de créditos
type PaymentRequest struct {
	CustomerID string          `json:"customer_id" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// CreditResponse representa a resposta de crédito
type CreditResponse struct {
	ID          string          `json:"id"`
	BranchID    string          `json:"branch_id"`
	CustomerID  string          `json:"customer_id"`
	OrderNumber string          `json:"order_number"`
	Description string          `json:"description,omitempty"`
	AmountOwed  decimal.Decimal `json:"amount_owed"`
	AmountPaid  decimal.Decimal `json:"amount_paid"`
	Balance     decimal.Decimal `json:"balance"`
	Status      credit.Status   `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CreditListResponse representa a resposta de lista de créditos de um cliente,
// com os totais agregados usados na exibição
type CreditListResponse struct {
	Items              []CreditResponse `json:"items"`
	TotalOwed          decimal.Decimal  `json:"total_owed"`
	TotalPaid          decimal.Decimal  `json:"total_paid"`
	OutstandingBalance decimal.Decimal  `json:"outstanding_balance"`
}

// AllocationResponse representa quanto de um pagamento foi aplicado a um crédito
type AllocationResponse struct {
	CreditID     string          `json:"credit_id"`
	OrderNumber  string          `json:"order_number"`
	Applied      decimal.Decimal `json:"applied"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Settled      bool            `json:"settled"`
}

// PaymentResponse representa a resposta de um pagamento aplicado
type PaymentResponse struct {
	Amount      decimal.Decimal      `json:"amount"`
	Allocations []AllocationResponse `json:"allocations"`
	Receipt     CreditResponse       `json:"receipt"`
}

// BalanceResponse representa o saldo devedor agregado de um cliente
type BalanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

// ToCreditResponse converte um crédito do domínio para DTO
func ToCreditResponse(c *credit.Credit) *CreditResponse {
	return &CreditResponse{
		ID:          c.ID,
		BranchID:    c.BranchID,
		CustomerID:  c.CustomerID,
		OrderNumber: c.OrderNumber,
		Description: c.Description,
		AmountOwed:  c.AmountOwed,
		AmountPaid:  c.AmountPaid,
		Balance:     c.Balance,
		Status:      c.Status,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToCreditListResponse converte uma lista de créditos do domínio para DTO
func ToCreditListResponse(credits []*credit.Credit) *CreditListResponse {
	resp := &CreditListResponse{
		Items:              make([]CreditResponse, len(credits)),
		TotalOwed:          decimal.Zero,
		TotalPaid:          decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}

	for i, c := range credits {
		resp.Items[i] = *ToCreditResponse(c)
		resp.TotalOwed = resp.TotalOwed.Add(c.AmountOwed)
		resp.TotalPaid = resp.TotalPaid.Add(c.AmountPaid)
		resp.OutstandingBalance = resp.OutstandingBalance.Add(c.Balance)
	}

	return resp
}

// ToPaymentResponse converte o resultado de um pagamento para DTO
func ToPaymentResponse(result *credit.PaymentResult) *PaymentResponse {
	allocations := make([]AllocationResponse, len(result.Allocations))
	for i, a := range result.Allocations {
		allocations[i] = AllocationResponse{
			CreditID:     a.CreditID,
			OrderNumber:  a.OrderNumber,
			Applied:      a.Applied,
			BalanceAfter: a.BalanceAfter,
			Settled:      a.Settled,
		}
	}

	return &PaymentResponse{
		Amount:      result.Amount,
		Allocations: allocations,
		Receipt:     *ToCreditResponse(result.Receipt),
	}
}
