package sale_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/farmacia-pos/internal/domain/sale"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewSale_ComputesTotalFromItems(t *testing.T) {
	s, err := sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
		{MedicineID: "med-1", Quantity: dec("2"), Price: dec("12.50")},
		{MedicineID: "med-2", Quantity: dec("0.5"), Price: dec("8")},
	})
	require.NoError(t, err)

	assert.True(t, s.TotalAmount.Equal(dec("29")))
	assert.Equal(t, sale.PaymentPending, s.PaymentStatus)
	assert.True(t, strings.HasPrefix(s.OrderNumber, "ORD-"))

	require.Len(t, s.Items, 2)
	assert.True(t, s.Items[0].Total.Equal(dec("25")))
	assert.True(t, s.Items[1].Total.Equal(dec("4")))
	assert.Equal(t, s.ID, s.Items[0].SaleID)
}

func TestNewSale_FractionalQuantities(t *testing.T) {
	// Venda fracionada: um quarto de cartela
	s, err := sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
		{MedicineID: "med-1", Quantity: dec("0.25"), Price: dec("10")},
	})
	require.NoError(t, err)
	assert.True(t, s.TotalAmount.Equal(dec("2.5")))
}

func TestNewSale_Validation(t *testing.T) {
	_, err := sale.NewSale("branch-1", "user-1", "", []sale.ItemInput{
		{MedicineID: "med-1", Quantity: dec("1"), Price: dec("10")},
	})
	assert.ErrorIs(t, err, sale.ErrEmptyCustomer)

	_, err = sale.NewSale("branch-1", "user-1", "cust-1", nil)
	assert.ErrorIs(t, err, sale.ErrNoItems)

	_, err = sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
		{MedicineID: "med-1", Quantity: decimal.Zero, Price: dec("10")},
	})
	assert.ErrorIs(t, err, sale.ErrInvalidQuantity)

	_, err = sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
		{MedicineID: "med-1", Quantity: dec("1"), Price: dec("-0.01")},
	})
	assert.ErrorIs(t, err, sale.ErrInvalidPrice)
}

func TestTransitionPaymentStatus(t *testing.T) {
	newSale := func(t *testing.T) *sale.Sale {
		s, err := sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
			{MedicineID: "med-1", Quantity: dec("1"), Price: dec("10")},
		})
		require.NoError(t, err)
		return s
	}

	t.Run("pending para unpaid e depois credit", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.TransitionPaymentStatus(sale.PaymentUnpaid))
		require.NoError(t, s.TransitionPaymentStatus(sale.PaymentCredit))
		assert.Equal(t, sale.PaymentCredit, s.PaymentStatus)
	})

	t.Run("status desconhecido é rejeitado", func(t *testing.T) {
		s := newSale(t)
		err := s.TransitionPaymentStatus(sale.PaymentStatus("cancelled"))
		assert.ErrorIs(t, err, sale.ErrInvalidStatus)
	})

	t.Run("venda em credit é terminal para mudança direta", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.TransitionPaymentStatus(sale.PaymentCredit))

		err := s.TransitionPaymentStatus(sale.PaymentUnpaid)
		assert.ErrorIs(t, err, sale.ErrStatusLocked)
		assert.Equal(t, sale.PaymentCredit, s.PaymentStatus)
	})

	t.Run("venda paga é terminal", func(t *testing.T) {
		s := newSale(t)
		require.NoError(t, s.TransitionPaymentStatus(sale.PaymentPaid))

		err := s.TransitionPaymentStatus(sale.PaymentCredit)
		assert.ErrorIs(t, err, sale.ErrStatusLocked)
	})
}

func TestOrderNumbersAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
			{MedicineID: "med-1", Quantity: dec("1"), Price: dec("1")},
		})
		require.NoError(t, err)
		assert.False(t, seen[s.OrderNumber], "número de pedido repetido: %s", s.OrderNumber)
		seen[s.OrderNumber] = true
	}
}
