package credit

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Erros sentinela do livro de créditos. Use com errors.Is.
var (
	// ErrInvalidAmount indica valor não positivo em crédito manual ou pagamento
	ErrInvalidAmount = errors.New("valor deve ser maior que zero")

	// ErrNoOpenCredits indica pagamento contra cliente sem créditos em aberto
	ErrNoOpenCredits = errors.New("cliente não possui créditos em aberto")

	// ErrOverpayment indica pagamento acima do saldo total em aberto
	ErrOverpayment = errors.New("pagamento excede o saldo em aberto")

	// ErrCreditNotFound indica crédito inexistente
	ErrCreditNotFound = errors.New("crédito não encontrado")

	// ErrCreditAlreadyExists indica tentativa de criar um segundo crédito de
	// origem para a mesma venda (mesmo order_number na mesma filial)
	ErrCreditAlreadyExists = errors.New("venda já possui crédito de origem")

	// ErrSaleNotCredit indica venda cujo status de pagamento não é "credit"
	ErrSaleNotCredit = errors.New("venda não está marcada como crédito")

	// ErrAmountMismatch indica divergência entre o valor informado e o total da venda
	ErrAmountMismatch = errors.New("valor devido difere do total da venda")
)

// OverpaymentError detalha um pagamento acima do saldo disponível
type OverpaymentError struct {
	CustomerID string
	Available  decimal.Decimal
	Requested  decimal.Decimal
	Shortfall  decimal.Decimal
}

func (e *OverpaymentError) Error() string {
	return fmt.Sprintf("pagamento excede o saldo em aberto: disponível %s, solicitado %s, excedente %s",
		e.Available.String(), e.Requested.String(), e.Shortfall.String())
}

func (e *OverpaymentError) Unwrap() error {
	return ErrOverpayment
}

// IsClientError informa se o erro decorre de entrada inválida do chamador
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrNoOpenCredits) ||
		errors.Is(err, ErrOverpayment) ||
		errors.Is(err, ErrSaleNotCredit) ||
		errors.Is(err, ErrAmountMismatch)
}
