package statement

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	"github.com/hugohenrick/farmacia-pos/internal/domain/customer"
	"github.com/hugohenrick/farmacia-pos/internal/domain/sale"
)

var (
	ErrInvalidPeriod     = errors.New("data inicial não pode ser posterior à data final")
	ErrInvalidReportType = errors.New("tipo de relatório inválido")
	ErrInvalidFormat     = errors.New("formato de exportação inválido")
)

// ReportType seleciona o conteúdo do extrato
type ReportType string

const (
	ReportSales   ReportType = "sales"
	ReportCredits ReportType = "credits"
	ReportBoth    ReportType = "both"
)

// ParseReportType valida e converte o tipo de relatório
func ParseReportType(s string) (ReportType, error) {
	switch ReportType(s) {
	case ReportSales, ReportCredits, ReportBoth:
		return ReportType(s), nil
	}
	return "", ErrInvalidReportType
}

// IncludesSales indica se o relatório contém a seção de vendas
func (r ReportType) IncludesSales() bool {
	return r == ReportSales || r == ReportBoth
}

// IncludesCredits indica se o relatório contém a seção de créditos
func (r ReportType) IncludesCredits() bool {
	return r == ReportCredits || r == ReportBoth
}

// Format seleciona o formato de exportação
type Format string

const (
	FormatPDF Format = "pdf"
	FormatCSV Format = "csv"
)

// ParseFormat valida e converte o formato de exportação
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, FormatCSV:
		return Format(s), nil
	}
	return "", ErrInvalidFormat
}

// Period é a janela de tempo do extrato, em dias inteiros nas pontas
type Period struct {
	Start time.Time
	End   time.Time
}

// NewPeriod valida e normaliza o período: início no começo do dia,
// fim no final do dia
func NewPeriod(start, end time.Time) (Period, error) {
	if start.After(end) {
		return Period{}, ErrInvalidPeriod
	}

	return Period{
		Start: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		End:   time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location()),
	}, nil
}

// Statement é o extrato do cliente em um período: vendas e créditos do
// intervalo com os totais de exibição. Leitura pura, nada aqui muta estado.
type Statement struct {
	Customer           *customer.Customer
	Period             Period
	ReportType         ReportType
	Sales              []*sale.Sale
	Credits            []*credit.Credit
	SalesTotal         decimal.Decimal
	CreditsTotal       decimal.Decimal
	OutstandingBalance decimal.Decimal
	GeneratedAt        time.Time
}

// Build monta o extrato calculando os totais das seções
func Build(cust *customer.Customer, period Period, reportType ReportType, sales []*sale.Sale, credits []*credit.Credit) *Statement {
	st := &Statement{
		Customer:           cust,
		Period:             period,
		ReportType:         reportType,
		Sales:              sales,
		Credits:            credits,
		SalesTotal:         decimal.Zero,
		CreditsTotal:       decimal.Zero,
		OutstandingBalance: decimal.Zero,
		GeneratedAt:        time.Now(),
	}

	for _, s := range sales {
		st.SalesTotal = st.SalesTotal.Add(s.TotalAmount)
	}
	for _, c := range credits {
		st.CreditsTotal = st.CreditsTotal.Add(c.AmountOwed)
		st.OutstandingBalance = st.OutstandingBalance.Add(c.Balance)
	}

	return st
}

// Renderer escreve o extrato em um formato de exportação
type Renderer interface {
	// Render serializa o extrato e retorna o conteúdo com o content type
	Render(st *Statement) ([]byte, string, error)
}
