package credit

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/hugohenrick/farmacia-pos/internal/domain/sale"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

// Ledger é o livro de créditos: controla o ciclo de vida dos lançamentos
// (criação a partir de venda ou crédito manual) e a distribuição de pagamentos
// pelos saldos em aberto. Filial e ator chegam como parâmetros explícitos em
// todas as operações.
type Ledger struct {
	credits Repository
	sales   sale.Repository
	tx      TxRunner
	logger  logger.Logger
}

// NewLedger cria um novo livro de créditos
func NewLedger(credits Repository, sales sale.Repository, tx TxRunner, log logger.Logger) *Ledger {
	return &Ledger{
		credits: credits,
		sales:   sales,
		tx:      tx,
		logger:  log,
	}
}

// PaymentResult é o resultado de um pagamento aplicado com sucesso
type PaymentResult struct {
	Allocations []Allocation    `json:"allocations"`
	Receipt     *Credit         `json:"receipt"`
	Amount      decimal.Decimal `json:"amount"`
}

// CreateFromSale cria o crédito de origem de uma venda marcada como "credit".
// Garante no máximo um crédito de origem por venda; a própria venda já deve
// estar em status "credit" (responsabilidade do chamador).
func (l *Ledger) CreateFromSale(ctx context.Context, branchID, actorID string, s *sale.Sale, amount decimal.Decimal) (*Credit, error) {
	exists, err := l.credits.ExistsByOrderNumber(ctx, branchID, s.OrderNumber)
	if err != nil {
		return nil, fmt.Errorf("erro ao verificar crédito existente: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: pedido %s", ErrCreditAlreadyExists, s.OrderNumber)
	}

	c, err := NewFromSale(branchID, actorID, s, amount)
	if err != nil {
		return nil, err
	}

	if err := l.credits.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("erro ao criar crédito da venda %s: %w", s.OrderNumber, err)
	}

	l.logger.Info("crédito criado a partir de venda",
		"order_number", c.OrderNumber, "customer_id", c.CustomerID, "amount_owed", c.AmountOwed.String())
	return c, nil
}

// CreateManual cria um crédito avulso para o cliente
func (l *Ledger) CreateManual(ctx context.Context, branchID, actorID, customerID string, amount decimal.Decimal, description string) (*Credit, error) {
	c, err := NewManual(branchID, actorID, customerID, amount, description)
	if err != nil {
		return nil, err
	}

	if err := l.credits.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("erro ao criar crédito manual: %w", err)
	}

	l.logger.Info("crédito manual criado",
		"order_number", c.OrderNumber, "customer_id", c.CustomerID, "amount_owed", c.AmountOwed.String())
	return c, nil
}

// OpenCreditsFor retorna os créditos em aberto do cliente
func (l *Ledger) OpenCreditsFor(ctx context.Context, branchID, customerID string) ([]*Credit, error) {
	return l.credits.OpenByCustomer(ctx, branchID, customerID)
}

// OutstandingBalance retorna o saldo devedor agregado do cliente
func (l *Ledger) OutstandingBalance(ctx context.Context, branchID, customerID string) (decimal.Decimal, error) {
	return l.credits.SumOpenBalance(ctx, branchID, customerID)
}

// ApplyPayment distribui um pagamento pelos créditos em aberto do cliente,
// do mais antigo para o mais novo, dentro de uma única transação: leitura com
// trava das linhas, atualização de cada crédito, baixa das vendas quitadas e
// gravação do recibo são confirmadas juntas ou desfeitas juntas.
func (l *Ledger) ApplyPayment(ctx context.Context, branchID, actorID, customerID string, amount decimal.Decimal) (*PaymentResult, error) {
	var result *PaymentResult

	err := l.tx.WithinTx(ctx, func(ctx context.Context) error {
		open, err := l.credits.OpenByCustomerForUpdate(ctx, branchID, customerID)
		if err != nil {
			return fmt.Errorf("erro ao buscar créditos em aberto: %w", err)
		}

		alloc, err := Allocate(open, amount)
		if err != nil {
			return err
		}

		for _, c := range open {
			if !c.AmountOwed.Sub(c.AmountPaid).Equal(c.Balance) {
				return fmt.Errorf("saldo inconsistente no crédito %s", c.ID)
			}
		}

		for _, entry := range alloc.Allocations {
			for _, c := range open {
				if c.ID != entry.CreditID {
					continue
				}
				if err := l.credits.UpdateAllocation(ctx, c); err != nil {
					return fmt.Errorf("erro ao atualizar crédito %s: %w", c.ID, err)
				}
				break
			}
		}

		for _, orderNumber := range alloc.SettledSaleOrders {
			if err := l.sales.MarkPaidByOrderNumber(ctx, branchID, orderNumber); err != nil {
				return fmt.Errorf("erro ao baixar venda %s: %w", orderNumber, err)
			}
		}

		receipt := NewPaymentReceipt(branchID, actorID, customerID, amount)
		if err := l.credits.Create(ctx, receipt); err != nil {
			return fmt.Errorf("erro ao gravar recibo de pagamento: %w", err)
		}

		result = &PaymentResult{
			Allocations: alloc.Allocations,
			Receipt:     receipt,
			Amount:      amount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("pagamento aplicado",
		"customer_id", customerID, "amount", amount.String(),
		"credits_touched", len(result.Allocations), "receipt", result.Receipt.OrderNumber)
	return result, nil
}
