package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/sale"
)

// SaleItemRequest representa a requisição de item de venda
type SaleItemRequest struct {
	MedicineID string          `json:"medicine_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Price      decimal.Decimal `json:"price" binding:"required"`
}

// SaleRequest representa a requisição de venda
type SaleRequest struct {
	CustomerID string            `json:"customer_id" binding:"required"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1"`
}

// SalePaymentStatusRequest representa a requisição de mudança de status de pagamento
type SalePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// SaleItemResponse representa a resposta de item de venda
type SaleItemResponse struct {
	ID         string          `json:"id"`
	MedicineID string          `json:"medicine_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Total      decimal.Decimal `json:"total"`
}

// SaleResponse representa a resposta de venda
type SaleResponse struct {
	ID            string             `json:"id"`
	BranchID      string             `json:"branch_id"`
	CustomerID    string             `json:"customer_id"`
	OrderNumber   string             `json:"order_number"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	PaymentStatus sale.PaymentStatus `json:"payment_status"`
	Items         []SaleItemResponse `json:"items,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// SaleListResponse representa a resposta de lista de vendas
type SaleListResponse struct {
	Items      []SaleResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Size       int            `json:"size"`
	TotalPages int            `json:"total_pages"`
}

// ToSaleResponse converte uma venda do domínio para DTO
func ToSaleResponse(s *sale.Sale) *SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = SaleItemResponse{
			ID:         item.ID,
			MedicineID: item.MedicineID,
			Quantity:   item.Quantity,
			Price:      item.Price,
			Total:      item.Total,
		}
	}

	return &SaleResponse{
		ID:            s.ID,
		BranchID:      s.BranchID,
		CustomerID:    s.CustomerID,
		OrderNumber:   s.OrderNumber,
		TotalAmount:   s.TotalAmount,
		PaymentStatus: s.PaymentStatus,
		Items:         items,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

// ToSaleListResponse converte uma lista de vendas do domínio para DTO
func ToSaleListResponse(sales []*sale.Sale, total, page, size int) *SaleListResponse {
	items := make([]SaleResponse, len(sales))
	for i, s := range sales {
		items[i] = *ToSaleResponse(s)
	}

	return &SaleListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
