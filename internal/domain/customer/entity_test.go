package customer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/farmacia-pos/internal/domain/customer"
)

func TestNewCustomer(t *testing.T) {
	c, err := customer.NewCustomer("branch-1", "Maria Silva", "maria@example.com", "11999990000", "Rua A, 10")
	require.NoError(t, err)

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "branch-1", c.BranchID)
	assert.Equal(t, "Maria Silva", c.Name)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestNewCustomer_Validation(t *testing.T) {
	_, err := customer.NewCustomer("branch-1", "", "a@b.com", "11999990000", "Rua A, 10")
	assert.ErrorIs(t, err, customer.ErrEmptyName)

	_, err = customer.NewCustomer("branch-1", "Maria", "a@b.com", "", "Rua A, 10")
	assert.ErrorIs(t, err, customer.ErrEmptyPhone)

	_, err = customer.NewCustomer("branch-1", "Maria", "a@b.com", "11999990000", "")
	assert.ErrorIs(t, err, customer.ErrEmptyAddress)

	// Email é opcional
	_, err = customer.NewCustomer("branch-1", "Maria", "", "11999990000", "Rua A, 10")
	assert.NoError(t, err)
}

func TestCustomerUpdate(t *testing.T) {
	c, err := customer.NewCustomer("branch-1", "Maria", "", "11999990000", "Rua A, 10")
	require.NoError(t, err)

	require.NoError(t, c.Update("Maria Souza", "maria@example.com", "11888880000", "Rua B, 20"))
	assert.Equal(t, "Maria Souza", c.Name)
	assert.Equal(t, "11888880000", c.Phone)

	err = c.Update("", "", "11888880000", "Rua B, 20")
	assert.ErrorIs(t, err, customer.ErrEmptyName)
	assert.Equal(t, "Maria Souza", c.Name)
}
