package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/medicine"
)

// MedicineRequest representa a requisição de medicamento
type MedicineRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description"`
	BatchNo         string          `json:"batch_no"`
	BuyingPrice     decimal.Decimal `json:"buying_price" binding:"required"`
	SellingPrice    decimal.Decimal `json:"selling_price" binding:"required"`
	StockQuantity   decimal.Decimal `json:"stock_quantity" binding:"required"`
	MeasurementUnit string          `json:"measurement_unit"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
}

// MedicineResponse representa a resposta de medicamento
type MedicineResponse struct {
	ID              string          `json:"id"`
	BranchID        string          `json:"branch_id"`
	Name            string          `json:"name"`
	Description     string          `json:"description"`
	BatchNo         string          `json:"batch_no"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	StockQuantity   decimal.Decimal `json:"stock_quantity"`
	MeasurementUnit string          `json:"measurement_unit"`
	ExpiryDate      *time.Time      `json:"expiry_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// MedicineListResponse representa a resposta de lista de medicamentos
type MedicineListResponse struct {
	Items      []MedicineResponse `json:"items"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	Size       int                `json:"size"`
	TotalPages int                `json:"total_pages"`
}

// ToMedicineResponse converte um medicamento do domínio para DTO
func ToMedicineResponse(m *medicine.Medicine) *MedicineResponse {
	return &MedicineResponse{
		ID:              m.ID,
		BranchID:        m.BranchID,
		Name:            m.Name,
		Description:     m.Description,
		BatchNo:         m.BatchNo,
		BuyingPrice:     m.BuyingPrice,
		SellingPrice:    m.SellingPrice,
		StockQuantity:   m.StockQuantity,
		MeasurementUnit: m.MeasurementUnit,
		ExpiryDate:      m.ExpiryDate,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToMedicineListResponse converte uma lista de medicamentos do domínio para DTO
func ToMedicineListResponse(medicines []*medicine.Medicine, total, page, size int) *MedicineListResponse {
	items := make([]MedicineResponse, len(medicines))
	for i, m := range medicines {
		items[i] = *ToMedicineResponse(m)
	}

	return &MedicineListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		Size:       size,
		TotalPages: calculateTotalPages(total, size),
	}
}
