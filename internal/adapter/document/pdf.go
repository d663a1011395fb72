package document

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hugohenrick/farmacia-pos/internal/domain/statement"
)

// PDFRenderer exporta o extrato do cliente como documento PDF A4
type PDFRenderer struct{}

// NewPDFRenderer cria um novo PDFRenderer
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render implementa statement.Renderer
func (r *PDFRenderer) Render(st *statement.Statement) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Customer Statement", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	writeHeaderLine(pdf, "Customer", st.Customer.Name)
	writeHeaderLine(pdf, "Phone", st.Customer.Phone)
	writeHeaderLine(pdf, "Address", st.Customer.Address)
	writeHeaderLine(pdf, "Period", fmt.Sprintf("%s to %s",
		st.Period.Start.Format("02/01/2006"), st.Period.End.Format("02/01/2006")))
	writeHeaderLine(pdf, "Generated At", st.GeneratedAt.Format("02/01/2006 15:04:05"))
	pdf.Ln(4)

	if st.ReportType.IncludesSales() {
		writeSectionTitle(pdf, "Sales Records")
		writeTableHeader(pdf, []colSpec{
			{"Date", 25}, {"Order Number", 55}, {"Total Amount", 40}, {"Status", 30},
		})
		pdf.SetFont("Helvetica", "", 9)
		for _, s := range st.Sales {
			pdf.CellFormat(25, 6, s.CreatedAt.Format("02/01/2006"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, s.OrderNumber, "1", 0, "L", false, 0, "")
			pdf.CellFormat(40, 6, s.TotalAmount.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, string(s.PaymentStatus), "1", 1, "L", false, 0, "")
		}
		writeTotalLine(pdf, "Sales Total", st.SalesTotal.StringFixed(2))
		pdf.Ln(4)
	}

	if st.ReportType.IncludesCredits() {
		writeSectionTitle(pdf, "Credit Records")
		writeTableHeader(pdf, []colSpec{
			{"Date", 25}, {"Order Number", 55}, {"Owed", 30}, {"Paid", 30}, {"Balance", 30},
		})
		pdf.SetFont("Helvetica", "", 9)
		for _, c := range st.Credits {
			pdf.CellFormat(25, 6, c.CreatedAt.Format("02/01/2006"), "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, 6, c.OrderNumber, "1", 0, "L", false, 0, "")
			pdf.CellFormat(30, 6, c.AmountOwed.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, c.AmountPaid.StringFixed(2), "1", 0, "R", false, 0, "")
			pdf.CellFormat(30, 6, c.Balance.StringFixed(2), "1", 1, "R", false, 0, "")
		}
		writeTotalLine(pdf, "Credits Total", st.CreditsTotal.StringFixed(2))
		writeTotalLine(pdf, "Outstanding Balance", st.OutstandingBalance.StringFixed(2))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("erro ao gerar PDF: %w", err)
	}

	return buf.Bytes(), "application/pdf", nil
}

type colSpec struct {
	title string
	width float64
}

func writeHeaderLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(35, 6, label, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func writeSectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func writeTableHeader(pdf *gofpdf.Fpdf, cols []colSpec) {
	pdf.SetFont("Helvetica", "B", 9)
	for i, col := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(col.width, 6, col.title, "1", ln, "L", false, 0, "")
	}
}

func writeTotalLine(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(80, 6, label, "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, value, "", 1, "R", false, 0, "")
}
