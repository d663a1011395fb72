package credit

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Allocation registra quanto de um pagamento foi aplicado a um crédito
type Allocation struct {
	CreditID     string          `json:"credit_id"`
	OrderNumber  string          `json:"order_number"`
	Applied      decimal.Decimal `json:"applied"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Settled      bool            `json:"settled"`
}

// AllocationResult é o resultado da distribuição de um pagamento
type AllocationResult struct {
	Allocations []Allocation
	// SettledSaleOrders são os números de pedido dos créditos quitados que
	// possuem venda de origem; as vendas correspondentes passam a "paid"
	SettledSaleOrders []string
	TotalApplied      decimal.Decimal
}

// Allocate distribui um pagamento pelos créditos em aberto do cliente,
// mutando os créditos recebidos. Algoritmo determinístico, guloso, do débito
// mais antigo para o mais novo, com desempate por ID para estabilidade.
//
// Falha com ErrInvalidAmount para valores não positivos, ErrNoOpenCredits
// para conjunto vazio e OverpaymentError quando o valor excede o saldo total;
// nesses casos nenhum crédito é mutado.
func Allocate(credits []*Credit, amount decimal.Decimal) (*AllocationResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}
	if len(credits) == 0 {
		return nil, ErrNoOpenCredits
	}

	available := decimal.Zero
	for _, c := range credits {
		available = available.Add(c.Balance)
	}
	if amount.GreaterThan(available) {
		return nil, &OverpaymentError{
			CustomerID: credits[0].CustomerID,
			Available:  available,
			Requested:  amount,
			Shortfall:  amount.Sub(available),
		}
	}

	ordered := make([]*Credit, len(credits))
	copy(ordered, credits)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	result := &AllocationResult{TotalApplied: decimal.Zero}
	remaining := amount

	for _, c := range ordered {
		if remaining.LessThanOrEqual(decimal.Zero) {
			break
		}

		applied := c.Apply(remaining)
		if applied.IsZero() {
			continue
		}

		remaining = remaining.Sub(applied)
		result.TotalApplied = result.TotalApplied.Add(applied)
		result.Allocations = append(result.Allocations, Allocation{
			CreditID:     c.ID,
			OrderNumber:  c.OrderNumber,
			Applied:      applied,
			BalanceAfter: c.Balance,
			Settled:      c.Settled(),
		})

		if c.Settled() && c.HasSaleOrigin() {
			result.SettledSaleOrders = append(result.SettledSaleOrders, c.OrderNumber)
		}
	}

	return result, nil
}
