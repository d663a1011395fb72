package credit_test

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	"github.com/hugohenrick/farmacia-pos/internal/domain/sale"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

// fakeCreditRepo guarda os créditos em memória, indexados por ID
type fakeCreditRepo struct {
	credits map[string]*credit.Credit
}

func newFakeCreditRepo() *fakeCreditRepo {
	return &fakeCreditRepo{credits: make(map[string]*credit.Credit)}
}

func (r *fakeCreditRepo) Create(_ context.Context, c *credit.Credit) error {
	cp := *c
	r.credits[c.ID] = &cp
	return nil
}

func (r *fakeCreditRepo) FindByID(_ context.Context, branchID, id string) (*credit.Credit, error) {
	c, ok := r.credits[id]
	if !ok || c.BranchID != branchID {
		return nil, credit.ErrCreditNotFound
	}
	return c, nil
}

func (r *fakeCreditRepo) ExistsByOrderNumber(_ context.Context, branchID, orderNumber string) (bool, error) {
	for _, c := range r.credits {
		if c.BranchID == branchID && c.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCreditRepo) OpenByCustomer(_ context.Context, branchID, customerID string) ([]*credit.Credit, error) {
	var out []*credit.Credit
	for _, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID && c.Balance.GreaterThan(decimal.Zero) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeCreditRepo) OpenByCustomerForUpdate(ctx context.Context, branchID, customerID string) ([]*credit.Credit, error) {
	return r.OpenByCustomer(ctx, branchID, customerID)
}

func (r *fakeCreditRepo) UpdateAllocation(_ context.Context, c *credit.Credit) error {
	stored, ok := r.credits[c.ID]
	if !ok {
		return credit.ErrCreditNotFound
	}
	stored.AmountPaid = c.AmountPaid
	stored.Balance = c.Balance
	stored.Status = c.Status
	stored.UpdatedAt = c.UpdatedAt
	return nil
}

func (r *fakeCreditRepo) ListByCustomer(ctx context.Context, branchID, customerID string, _, _ int) ([]*credit.Credit, error) {
	return r.OpenByCustomer(ctx, branchID, customerID)
}

func (r *fakeCreditRepo) ListByCustomerInPeriod(_ context.Context, branchID, customerID string, from, to time.Time) ([]*credit.Credit, error) {
	var out []*credit.Credit
	for _, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID && !c.CreatedAt.Before(from) && !c.CreatedAt.After(to) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCreditRepo) SumOpenBalance(_ context.Context, branchID, customerID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID {
			sum = sum.Add(c.Balance)
		}
	}
	return sum, nil
}

func (r *fakeCreditRepo) DeleteByCustomer(_ context.Context, branchID, customerID string) error {
	for id, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID {
			delete(r.credits, id)
		}
	}
	return nil
}

func (r *fakeCreditRepo) receipts() []*credit.Credit {
	var out []*credit.Credit
	for _, c := range r.credits {
		if strings.HasPrefix(c.OrderNumber, "PAYMENT-") {
			out = append(out, c)
		}
	}
	return out
}

// fakeSaleRepo registra apenas as baixas de venda, que é o que o livro usa
type fakeSaleRepo struct {
	sale.Repository
	paidOrders []string
}

func (r *fakeSaleRepo) MarkPaidByOrderNumber(_ context.Context, _ string, orderNumber string) error {
	r.paidOrders = append(r.paidOrders, orderNumber)
	return nil
}

// fakeTxRunner executa a função direto; um erro dela equivale ao rollback
type fakeTxRunner struct {
	calls int
}

func (r *fakeTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	r.calls++
	return fn(ctx)
}

func newTestLedger() (*credit.Ledger, *fakeCreditRepo, *fakeSaleRepo, *fakeTxRunner) {
	creditRepo := newFakeCreditRepo()
	saleRepo := &fakeSaleRepo{}
	tx := &fakeTxRunner{}
	return credit.NewLedger(creditRepo, saleRepo, tx, logger.NewLogger()), creditRepo, saleRepo, tx
}

func seedManual(t *testing.T, l *credit.Ledger, amount string) *credit.Credit {
	t.Helper()
	c, err := l.CreateManual(context.Background(), "branch-1", "user-1", "cust-1", dec(amount), "")
	require.NoError(t, err)
	return c
}

func TestLedger_ApplyPayment_SingleReceiptPerPayment(t *testing.T) {
	l, creditRepo, _, tx := newTestLedger()
	ctx := context.Background()

	seedManual(t, l, "60")
	seedManual(t, l, "40")

	result, err := l.ApplyPayment(ctx, "branch-1", "user-1", "cust-1", dec("70"))
	require.NoError(t, err)

	assert.True(t, result.Amount.Equal(dec("70")))
	require.NotNil(t, result.Receipt)
	assert.True(t, strings.HasPrefix(result.Receipt.OrderNumber, "PAYMENT-"))
	assert.Equal(t, credit.StatusPaid, result.Receipt.Status)

	// Um único recibo gravado, já quitado, fora do conjunto de alocação
	receipts := creditRepo.receipts()
	require.Len(t, receipts, 1)
	assert.True(t, receipts[0].Balance.IsZero())
	assert.Equal(t, 1, tx.calls)

	balance, err := l.OutstandingBalance(ctx, "branch-1", "cust-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("30")))
}

func TestLedger_ApplyPayment_BackToBackReceiptsDistinct(t *testing.T) {
	l, creditRepo, _, _ := newTestLedger()
	ctx := context.Background()

	seedManual(t, l, "100")

	// Dois pagamentos no mesmo segundo, cada um com seu recibo
	first, err := l.ApplyPayment(ctx, "branch-1", "user-1", "cust-1", dec("10"))
	require.NoError(t, err)
	second, err := l.ApplyPayment(ctx, "branch-1", "user-1", "cust-1", dec("10"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Receipt.OrderNumber, second.Receipt.OrderNumber)
	assert.Len(t, creditRepo.receipts(), 2)
}

func TestLedger_ApplyPayment_MarksSettledSalesPaid(t *testing.T) {
	l, _, saleRepo, _ := newTestLedger()
	ctx := context.Background()

	s, err := sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
		{MedicineID: "med-1", Quantity: dec("1"), Price: dec("50")},
	})
	require.NoError(t, err)
	require.NoError(t, s.TransitionPaymentStatus(sale.PaymentCredit))

	_, err = l.CreateFromSale(ctx, "branch-1", "user-1", s, s.TotalAmount)
	require.NoError(t, err)

	// Pagamento parcial não baixa a venda
	_, err = l.ApplyPayment(ctx, "branch-1", "user-1", "cust-1", dec("20"))
	require.NoError(t, err)
	assert.Empty(t, saleRepo.paidOrders)

	// Quitação do crédito baixa a venda de origem
	_, err = l.ApplyPayment(ctx, "branch-1", "user-1", "cust-1", dec("30"))
	require.NoError(t, err)
	assert.Equal(t, []string{s.OrderNumber}, saleRepo.paidOrders)
}

func TestLedger_ApplyPayment_Overpayment_NothingPersisted(t *testing.T) {
	l, creditRepo, saleRepo, _ := newTestLedger()
	ctx := context.Background()

	seedManual(t, l, "50")

	_, err := l.ApplyPayment(ctx, "branch-1", "user-1", "cust-1", dec("50.01"))
	require.ErrorIs(t, err, credit.ErrOverpayment)

	// Nada mudou: sem recibo, sem baixa de venda, saldo intacto
	assert.Empty(t, creditRepo.receipts())
	assert.Empty(t, saleRepo.paidOrders)

	balance, err := l.OutstandingBalance(ctx, "branch-1", "cust-1")
	require.NoError(t, err)
	assert.True(t, balance.Equal(dec("50")))
}

func TestLedger_ApplyPayment_NoOpenCredits(t *testing.T) {
	l, _, _, _ := newTestLedger()

	_, err := l.ApplyPayment(context.Background(), "branch-1", "user-1", "cust-sem-credito", dec("10"))
	assert.ErrorIs(t, err, credit.ErrNoOpenCredits)
}

func TestLedger_CreateFromSale_RejectsDuplicate(t *testing.T) {
	l, _, _, _ := newTestLedger()
	ctx := context.Background()

	s, err := sale.NewSale("branch-1", "user-1", "cust-1", []sale.ItemInput{
		{MedicineID: "med-1", Quantity: dec("1"), Price: dec("30")},
	})
	require.NoError(t, err)
	require.NoError(t, s.TransitionPaymentStatus(sale.PaymentCredit))

	_, err = l.CreateFromSale(ctx, "branch-1", "user-1", s, s.TotalAmount)
	require.NoError(t, err)

	_, err = l.CreateFromSale(ctx, "branch-1", "user-1", s, s.TotalAmount)
	assert.ErrorIs(t, err, credit.ErrCreditAlreadyExists)
}

func TestLedger_ApplyPayment_SettlesOldestFirstAcrossOrigins(t *testing.T) {
	l, _, _, _ := newTestLedger()
	ctx := context.Background()

	older := seedManual(t, l, "30")
	time.Sleep(2 * time.Millisecond)
	newer := seedManual(t, l, "30")

	result, err := l.ApplyPayment(ctx, "branch-1", "user-1", "cust-1", dec("30"))
	require.NoError(t, err)

	require.Len(t, result.Allocations, 1)
	assert.Equal(t, older.ID, result.Allocations[0].CreditID)

	open, err := l.OpenCreditsFor(ctx, "branch-1", "cust-1")
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, newer.ID, open[0].ID)
}
