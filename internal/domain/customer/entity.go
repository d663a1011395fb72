package customer

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName    = errors.New("nome não pode ser vazio")
	ErrEmptyPhone   = errors.New("telefone não pode ser vazio")
	ErrEmptyAddress = errors.New("endereço não pode ser vazio")
)

// Customer representa um cliente da farmácia.
// É a âncora de identidade para vendas e créditos: a exclusão de um cliente
// remove em cascata as vendas e os créditos dependentes.
type Customer struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomer cria um novo cliente
func NewCustomer(branchID, name, email, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if phone == "" {
		return nil, ErrEmptyPhone
	}
	if address == "" {
		return nil, ErrEmptyAddress
	}

	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		BranchID:  branchID,
		Name:      name,
		Email:     email,
		Phone:     phone,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados do cliente
func (c *Customer) Update(name, email, phone, address string) error {
	if name == "" {
		return ErrEmptyName
	}
	if phone == "" {
		return ErrEmptyPhone
	}
	if address == "" {
		return ErrEmptyAddress
	}

	c.Name = name
	c.Email = email
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()

	return nil
}
