package dto

import (
	"time"

	"github.com/hugohenrick/farmacia-pos/internal/domain/customer"
)

// CustomerRequest representa a requisição de cliente
type CustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID        string    `json:"id"`
	BranchID  string    `json:"branch_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerListResponse representa a resposta de lista de clientes
type CustomerListResponse struct {
	Items      []CustomerResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalPages int                `json:"total_pages"`
}

// ToCustomerResponse converte um cliente do domínio para DTO
func ToCustomerResponse(c *customer.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		BranchID:  c.BranchID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma lista de clientes do domínio para DTO
func ToCustomerListResponse(customers []*customer.Customer, total, page, size int) *CustomerListResponse {
	items := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		items[i] = *ToCustomerResponse(c)
	}

	return &CustomerListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
