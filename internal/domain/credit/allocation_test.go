package credit_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/farmacia-pos/internal/domain/credit"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func openCredit(id, orderNumber string, owed decimal.Decimal, createdAt time.Time) *credit.Credit {
	return &credit.Credit{
		ID:          id,
		BranchID:    "branch-1",
		CustomerID:  "cust-1",
		OrderNumber: orderNumber,
		AmountOwed:  owed,
		AmountPaid:  decimal.Zero,
		Balance:     owed,
		Status:      credit.StatusUnpaid,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestAllocate_OldestFirst(t *testing.T) {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	older := openCredit("a", "ORD-1", dec("50"), base)
	newer := openCredit("b", "ORD-2", dec("80"), base.Add(24*time.Hour))

	// Entrada fora de ordem cronológica de propósito
	result, err := credit.Allocate([]*credit.Credit{newer, older}, dec("70"))
	require.NoError(t, err)

	require.Len(t, result.Allocations, 2)
	assert.Equal(t, "a", result.Allocations[0].CreditID)
	assert.True(t, result.Allocations[0].Applied.Equal(dec("50")))
	assert.True(t, result.Allocations[0].Settled)

	assert.Equal(t, "b", result.Allocations[1].CreditID)
	assert.True(t, result.Allocations[1].Applied.Equal(dec("20")))
	assert.False(t, result.Allocations[1].Settled)

	assert.True(t, older.Balance.IsZero())
	assert.Equal(t, credit.StatusPaid, older.Status)
	assert.True(t, newer.Balance.Equal(dec("60")))
	assert.Equal(t, credit.StatusPartiallyPaid, newer.Status)
}

func TestAllocate_ExactSettlement(t *testing.T) {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	first := openCredit("a", "ORD-1", dec("30"), base)
	second := openCredit("b", "ORD-2", dec("45.50"), base.Add(time.Hour))

	result, err := credit.Allocate([]*credit.Credit{first, second}, dec("75.50"))
	require.NoError(t, err)

	assert.True(t, result.TotalApplied.Equal(dec("75.50")))
	for _, a := range result.Allocations {
		assert.True(t, a.Settled)
		assert.True(t, a.BalanceAfter.IsZero())
	}
	assert.ElementsMatch(t, []string{"ORD-1", "ORD-2"}, result.SettledSaleOrders)
}

func TestAllocate_Overpayment_NothingMutated(t *testing.T) {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	first := openCredit("a", "ORD-1", dec("30"), base)
	second := openCredit("b", "ORD-2", dec("20"), base.Add(time.Hour))

	result, err := credit.Allocate([]*credit.Credit{first, second}, dec("50.01"))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, credit.ErrOverpayment))
	assert.True(t, credit.IsClientError(err))

	var overErr *credit.OverpaymentError
	require.True(t, errors.As(err, &overErr))
	assert.True(t, overErr.Available.Equal(dec("50")))
	assert.True(t, overErr.Requested.Equal(dec("50.01")))
	assert.True(t, overErr.Shortfall.Equal(dec("0.01")))

	// Rejeição total: nenhum crédito foi tocado
	assert.True(t, first.Balance.Equal(dec("30")))
	assert.True(t, first.AmountPaid.IsZero())
	assert.Equal(t, credit.StatusUnpaid, first.Status)
	assert.True(t, second.Balance.Equal(dec("20")))
	assert.Equal(t, credit.StatusUnpaid, second.Status)
}

func TestAllocate_InvalidAmount(t *testing.T) {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	c := openCredit("a", "ORD-1", dec("30"), base)

	_, err := credit.Allocate([]*credit.Credit{c}, decimal.Zero)
	assert.ErrorIs(t, err, credit.ErrInvalidAmount)

	_, err = credit.Allocate([]*credit.Credit{c}, dec("-5"))
	assert.ErrorIs(t, err, credit.ErrInvalidAmount)
	assert.True(t, credit.IsClientError(err))
}

func TestAllocate_NoOpenCredits(t *testing.T) {
	_, err := credit.Allocate(nil, dec("10"))
	assert.ErrorIs(t, err, credit.ErrNoOpenCredits)
}

func TestAllocate_TieBreakByID(t *testing.T) {
	same := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	b := openCredit("b", "ORD-2", dec("10"), same)
	a := openCredit("a", "ORD-1", dec("10"), same)

	result, err := credit.Allocate([]*credit.Credit{b, a}, dec("10"))
	require.NoError(t, err)

	require.Len(t, result.Allocations, 1)
	assert.Equal(t, "a", result.Allocations[0].CreditID)
	assert.True(t, b.Balance.Equal(dec("10")))
}

func TestAllocate_ConservationOfAmount(t *testing.T) {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	var credits []*credit.Credit
	owed := []string{"12.25", "7.50", "0.99", "103", "42.42"}
	for i, v := range owed {
		credits = append(credits, openCredit(uuid.New().String(), "ORD-"+v, dec(v), base.Add(time.Duration(i)*time.Minute)))
	}

	amount := dec("100.10")
	result, err := credit.Allocate(credits, amount)
	require.NoError(t, err)

	// A soma dos valores aplicados é exatamente o valor pago
	sum := decimal.Zero
	for _, a := range result.Allocations {
		sum = sum.Add(a.Applied)
	}
	assert.True(t, sum.Equal(amount), "aplicado %s, esperado %s", sum, amount)
	assert.True(t, result.TotalApplied.Equal(amount))

	// E cada crédito mantém a consistência dos campos derivados
	for _, c := range credits {
		assert.True(t, c.AmountOwed.Sub(c.AmountPaid).Equal(c.Balance))
		assert.False(t, c.Balance.IsNegative())
	}
}

func TestAllocate_ManualCreditsNotMarkedAsSaleOrders(t *testing.T) {
	base := time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)
	manual, err := credit.NewManual("branch-1", "user-1", "cust-1", dec("25"), "ajuste")
	require.NoError(t, err)
	manual.CreatedAt = base

	fromSale := openCredit("b", "ORD-9", dec("25"), base.Add(time.Hour))

	result, err := credit.Allocate([]*credit.Credit{manual, fromSale}, dec("50"))
	require.NoError(t, err)

	// Só o crédito com venda de origem entra na lista de baixa de vendas
	assert.Equal(t, []string{"ORD-9"}, result.SettledSaleOrders)
	require.Len(t, result.Allocations, 2)
	assert.True(t, result.Allocations[0].Settled)
	assert.True(t, result.Allocations[1].Settled)
}
