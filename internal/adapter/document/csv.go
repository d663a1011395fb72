package document

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/hugohenrick/farmacia-pos/internal/domain/statement"
)

// CSVRenderer exporta o extrato do cliente como planilha CSV
type CSVRenderer struct{}

// NewCSVRenderer cria um novo CSVRenderer
func NewCSVRenderer() *CSVRenderer {
	return &CSVRenderer{}
}

// Render implementa statement.Renderer
func (r *CSVRenderer) Render(st *statement.Statement) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"Customer Statement"},
		{"Customer Name", st.Customer.Name},
		{"Phone", st.Customer.Phone},
		{"Email", valueOr(st.Customer.Email, "N/A")},
		{"Address", st.Customer.Address},
		{"Period", fmt.Sprintf("%s to %s",
			st.Period.Start.Format("02/01/2006"), st.Period.End.Format("02/01/2006"))},
		{"Generated At", st.GeneratedAt.Format("02/01/2006 15:04:05")},
		{},
	}

	if st.ReportType.IncludesSales() {
		records = append(records,
			[]string{"SALES RECORDS"},
			[]string{"Date", "Order Number", "Items", "Total Amount", "Payment Status"},
		)
		for _, s := range st.Sales {
			items := make([]string, 0, len(s.Items))
			for _, item := range s.Items {
				items = append(items, fmt.Sprintf("%s (Qty: %s)", item.MedicineID, item.Quantity.String()))
			}
			records = append(records, []string{
				s.CreatedAt.Format("02/01/2006"),
				"#" + s.OrderNumber,
				strings.Join(items, ", "),
				s.TotalAmount.StringFixed(2),
				string(s.PaymentStatus),
			})
		}
		records = append(records,
			[]string{"Sales Total", st.SalesTotal.StringFixed(2)},
			[]string{},
		)
	}

	if st.ReportType.IncludesCredits() {
		records = append(records,
			[]string{"CREDIT RECORDS"},
			[]string{"Date", "Order Number", "Amount Owed", "Amount Paid", "Balance", "Status"},
		)
		for _, c := range st.Credits {
			records = append(records, []string{
				c.CreatedAt.Format("02/01/2006"),
				c.OrderNumber,
				c.AmountOwed.StringFixed(2),
				c.AmountPaid.StringFixed(2),
				c.Balance.StringFixed(2),
				string(c.Status),
			})
		}
		records = append(records,
			[]string{"Credits Total", st.CreditsTotal.StringFixed(2)},
			[]string{"Outstanding Balance", st.OutstandingBalance.StringFixed(2)},
		)
	}

	if err := w.WriteAll(records); err != nil {
		return nil, "", fmt.Errorf("erro ao escrever CSV: %w", err)
	}

	return buf.Bytes(), "text/csv", nil
}

func valueOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
