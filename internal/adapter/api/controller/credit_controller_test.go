package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/controller"
	"github.com/hugohenrick/farmacia-pos/internal/adapter/api/route"
	creditdomain "github.com/hugohenrick/farmacia-pos/internal/domain/credit"
	customerdomain "github.com/hugohenrick/farmacia-pos/internal/domain/customer"
	saledomain "github.com/hugohenrick/farmacia-pos/internal/domain/sale"
	"github.com/hugohenrick/farmacia-pos/pkg/branch"
	"github.com/hugohenrick/farmacia-pos/pkg/logger"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// memCreditRepo guarda os créditos em memória para os testes de API
type memCreditRepo struct {
	credits map[string]*creditdomain.Credit
}

func (r *memCreditRepo) Create(_ context.Context, c *creditdomain.Credit) error {
	cp := *c
	r.credits[c.ID] = &cp
	return nil
}

func (r *memCreditRepo) FindByID(_ context.Context, branchID, id string) (*creditdomain.Credit, error) {
	c, ok := r.credits[id]
	if !ok || c.BranchID != branchID {
		return nil, creditdomain.ErrCreditNotFound
	}
	return c, nil
}

func (r *memCreditRepo) ExistsByOrderNumber(_ context.Context, branchID, orderNumber string) (bool, error) {
	for _, c := range r.credits {
		if c.BranchID == branchID && c.OrderNumber == orderNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCreditRepo) OpenByCustomer(_ context.Context, branchID, customerID string) ([]*creditdomain.Credit, error) {
	var out []*creditdomain.Credit
	for _, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID && c.Balance.GreaterThan(decimal.Zero) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memCreditRepo) OpenByCustomerForUpdate(ctx context.Context, branchID, customerID string) ([]*creditdomain.Credit, error) {
	return r.OpenByCustomer(ctx, branchID, customerID)
}

func (r *memCreditRepo) UpdateAllocation(_ context.Context, c *creditdomain.Credit) error {
	stored, ok := r.credits[c.ID]
	if !ok {
		return creditdomain.ErrCreditNotFound
	}
	*stored = *c
	return nil
}

func (r *memCreditRepo) ListByCustomer(ctx context.Context, branchID, customerID string, _, _ int) ([]*creditdomain.Credit, error) {
	return r.OpenByCustomer(ctx, branchID, customerID)
}

func (r *memCreditRepo) ListByCustomerInPeriod(_ context.Context, branchID, customerID string, from, to time.Time) ([]*creditdomain.Credit, error) {
	var out []*creditdomain.Credit
	for _, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID && !c.CreatedAt.Before(from) && !c.CreatedAt.After(to) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCreditRepo) SumOpenBalance(_ context.Context, branchID, customerID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID {
			sum = sum.Add(c.Balance)
		}
	}
	return sum, nil
}

func (r *memCreditRepo) DeleteByCustomer(_ context.Context, branchID, customerID string) error {
	for id, c := range r.credits {
		if c.BranchID == branchID && c.CustomerID == customerID {
			delete(r.credits, id)
		}
	}
	return nil
}

// memCustomerRepo só responde às verificações de existência usadas pela API
type memCustomerRepo struct {
	customerdomain.Repository
	known map[string]bool
}

func (r *memCustomerRepo) Exists(_ context.Context, _ string, id string) (bool, error) {
	return r.known[id], nil
}

// memSaleRepo só registra as baixas de venda
type memSaleRepo struct {
	saledomain.Repository
}

func (r *memSaleRepo) MarkPaidByOrderNumber(_ context.Context, _, _ string) error {
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newCreditAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	creditRepo := &memCreditRepo{credits: make(map[string]*creditdomain.Credit)}
	customerRepo := &memCustomerRepo{known: map[string]bool{"cust-1": true}}
	ledger := creditdomain.NewLedger(creditRepo, &memSaleRepo{}, passthroughTx{}, logger.NewLogger())

	creditController := controller.NewCreditController(ledger, customerRepo, logger.NewLogger())

	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(branch.Middleware())
	route.RegisterCreditRoutes(api, creditController)
	api.GET("/customers/:id/credits", creditController.ListByCustomer)
	api.GET("/customers/:id/balance", creditController.Balance)

	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("branch-id", "branch-1")
	req.Header.Set("user-id", "user-1")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreditAPI_ManualCreditAndPayment(t *testing.T) {
	router := newCreditAPI(t)

	w := doJSON(router, http.MethodPost, "/api/v1/credits", gin.H{
		"customer_id": "cust-1",
		"amount":      "80",
		"description": "fiado do balcão",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/api/v1/credits/payments", gin.H{
		"customer_id": "cust-1",
		"amount":      "30",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Amount      decimal.Decimal `json:"amount"`
		Allocations []struct {
			Applied decimal.Decimal `json:"applied"`
			Settled bool            `json:"settled"`
		} `json:"allocations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Amount.Equal(dec("30")))
	require.Len(t, resp.Allocations, 1)
	assert.False(t, resp.Allocations[0].Settled)

	w = doJSON(router, http.MethodGet, "/api/v1/customers/cust-1/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "50")
}

func TestCreditAPI_OverpaymentRejected(t *testing.T) {
	router := newCreditAPI(t)

	w := doJSON(router, http.MethodPost, "/api/v1/credits", gin.H{
		"customer_id": "cust-1",
		"amount":      "40",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(router, http.MethodPost, "/api/v1/credits/payments", gin.H{
		"customer_id": "cust-1",
		"amount":      "40.01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Nada foi abatido
	w = doJSON(router, http.MethodGet, "/api/v1/customers/cust-1/balance", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "40")
}

func TestCreditAPI_PaymentWithoutOpenCredits(t *testing.T) {
	router := newCreditAPI(t)

	w := doJSON(router, http.MethodPost, "/api/v1/credits/payments", gin.H{
		"customer_id": "cust-1",
		"amount":      "10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestCreditAPI_UnknownCustomer(t *testing.T) {
	router := newCreditAPI(t)

	w := doJSON(router, http.MethodPost, "/api/v1/credits", gin.H{
		"customer_id": "cust-ghost",
		"amount":      "10",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreditAPI_InvalidBody(t *testing.T) {
	router := newCreditAPI(t)

	w := doJSON(router, http.MethodPost, "/api/v1/credits", gin.H{
		"amount": "10",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
