package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/nibso-dashboard/internal/application/analytics"
	"github.com/jhoicas/nibso-dashboard/internal/application/auth"
	"github.com/jhoicas/nibso-dashboard/internal/application/dto"
	"github.com/jhoicas/nibso-dashboard/internal/application/inventory"
	"github.com/jhoicas/nibso-dashboard/internal/application/loyalty"
	"github.com/jhoicas/nibso-dashboard/internal/application/pos"
	"github.com/jhoicas/nibso-dashboard/internal/application/promotion"
	"github.com/jhoicas/nibso-dashboard/internal/application/sales"
	"github.com/jhoicas/nibso-dashboard/internal/domain/entity"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/kvstore"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/metrics"
	"github.com/jhoicas/nibso-dashboard/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/nibso-dashboard/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/nibso-dashboard/pkg/jwt"
)

type apiFixture struct {
	app *fiber.App
	inv *inventory.Ledger
}

func newAPI(t *testing.T, vertical entity.Vertical) *apiFixture {
	t.Helper()
	ctx := context.Background()
	store := kvstore.NewMemory()

	authUC, err := auth.NewAuthUseCase(ctx, store, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer})
	require.NoError(t, err)
	inv, err := inventory.NewLedger(ctx, store)
	require.NoError(t, err)
	promos, err := promotion.NewCatalog(ctx, store)
	require.NoError(t, err)
	members, err := loyalty.NewRegistry(ctx, store)
	require.NoError(t, err)
	ledger, err := sales.NewLedger(ctx, store)
	require.NoError(t, err)
	journal, err := sales.NewJournal(ctx, store)
	require.NoError(t, err)

	profile := entity.BusinessProfile{
		Name: "Nibso Mart", Vertical: vertical, TaxRate: decimal.NewFromFloat(7.5),
		CurrencySymbol: "₦", StockPolicy: entity.StockPolicyAllowNegative,
	}
	prom := metrics.New("nibso")
	terminals := pos.NewTerminals(pos.Deps{
		Inventory: inv, Promotions: promos, Loyalty: members, Sales: ledger, Journal: journal,
		Observer: prom, Profile: profile, Log: zerolog.Nop(),
	})

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop(), prom))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:        authUC,
		Inventory:     inv,
		Replenishment: inventory.NewReplenishmentUseCase(inv, journal),
		Promotions:    promos,
		Loyalty:       members,
		Terminals:     terminals,
		Sales: apphttp.SalesHandlerDeps{
			Ledger:  ledger,
			Journal: journal,
			Dashboard: analytics.NewDashboardUseCase(analytics.Sources{
				Sales: ledger, Top: journal, Stock: inv,
			}),
			PDF: pdf.NewReceiptPDFGenerator(profile),
		},
		Metrics:   prom.Handler(),
		JWTSecret: testJWTSecret,
	})
	return &apiFixture{app: app, inv: inv}
}

func bearer(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func (f *apiFixture) do(t *testing.T, method, path, auth string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestRouter_VentaCompleta(t *testing.T) {
	f := newAPI(t, entity.VerticalSupermarket)
	manager := bearer(t, "u-manager", entity.RoleManager)
	cashier := bearer(t, "u-cashier", entity.RoleCashier)

	resp := f.do(t, http.MethodPost, "/api/inventory", manager, dto.ItemRequest{
		ID: "milk", Name: "Milk", Price: decimal.NewFromInt(1200), Stock: decimal.NewFromInt(45), Category: "Groceries",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/inventory", cashier, dto.ItemRequest{Name: "x", Price: decimal.NewFromInt(1)})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	for i := 0; i < 2; i++ {
		resp = f.do(t, http.MethodPost, "/api/pos/cart/items", cashier, dto.AddItemRequest{ItemID: "milk"})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	cart := decode[dto.CartResponse](t, f.do(t, http.MethodGet, "/api/pos/cart", cashier, nil))
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.True(t, decimal.NewFromInt(2400).Equal(cart.Totals.Subtotal))
	assert.True(t, decimal.NewFromInt(180).Equal(cart.Totals.TaxAmount))
	assert.True(t, decimal.NewFromInt(2580).Equal(cart.Totals.Total))

	// el carrito del manager es otro
	other := decode[dto.CartResponse](t, f.do(t, http.MethodGet, "/api/pos/cart", manager, nil))
	assert.Empty(t, other.Lines)

	resp = f.do(t, http.MethodPost, "/api/pos/cart/finalize", cashier, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	fin := decode[dto.FinalizeResponse](t, resp)
	assert.True(t, decimal.NewFromInt(2580).Equal(fin.Sale.Total))
	assert.Equal(t, "u-cashier", fin.Sale.CashierID)

	it, ok := f.inv.GetByID("milk")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(43).Equal(it.Stock))

	resp = f.do(t, http.MethodPost, "/api/pos/cart/finalize", cashier, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "EMPTY_CART", errBody.Code)

	daily := decode[[]dto.DailySaleDTO](t, f.do(t, http.MethodGet, "/api/sales/daily", manager, nil))
	require.Len(t, daily, 1)
	assert.True(t, decimal.NewFromInt(2580).Equal(daily[0].Revenue))

	resp = f.do(t, http.MethodGet, "/api/sales/daily", cashier, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	sale := decode[dto.SaleDTO](t, f.do(t, http.MethodGet, "/api/sales/transactions/"+fin.Sale.TransactionID, cashier, nil))
	assert.Equal(t, fin.Sale.TransactionID, sale.TransactionID)

	resp = f.do(t, http.MethodGet, "/api/sales/transactions/"+fin.Sale.TransactionID+"/receipt.pdf", cashier, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	summary := decode[dto.DashboardSummaryDTO](t, f.do(t, http.MethodGet, "/api/sales/summary", manager, nil))
	assert.Equal(t, 1, summary.TodayTransactions)
	require.Len(t, summary.TopItems, 1)
	assert.Equal(t, 2, summary.TopItems[0].QuantitySold)

	resp = f.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Contains(t, string(raw), "nibso_sales_finalized_total 1")
}

func TestRouter_DomicilioIncompleto(t *testing.T) {
	f := newAPI(t, entity.VerticalGeneral)
	cashier := bearer(t, "u-cashier", entity.RoleCashier)
	_, err := f.inv.Add(context.Background(), entity.InventoryItem{ID: "gas", Name: "Gas 12.5kg", Price: decimal.NewFromInt(9000), Stock: decimal.NewFromInt(3), Category: "LPG"})
	require.NoError(t, err)

	resp := f.do(t, http.MethodPost, "/api/pos/cart/items", cashier, dto.AddItemRequest{ItemID: "gas"})
	resp.Body.Close()
	resp = f.do(t, http.MethodPut, "/api/pos/cart/delivery", cashier, dto.DeliveryRequest{CustomerName: "Ada", Address: "12 Marina"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cart := decode[dto.CartResponse](t, resp)
	require.NotNil(t, cart.Delivery)
	assert.False(t, cart.Delivery.Complete)

	resp = f.do(t, http.MethodPost, "/api/pos/cart/finalize", cashier, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DELIVERY_INCOMPLETE", errBody.Code)
}

func TestRouter_PromocionesSoloSupermercado(t *testing.T) {
	f := newAPI(t, entity.VerticalHospital)
	manager := bearer(t, "u-manager", entity.RoleManager)

	resp := f.do(t, http.MethodGet, "/api/promotions", manager, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VERTICAL_DISABLED", errBody.Code)

	resp = f.do(t, http.MethodGet, "/api/inventory", manager, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_ArticuloDesconocido(t *testing.T) {
	f := newAPI(t, entity.VerticalSupermarket)
	resp := f.do(t, http.MethodPost, "/api/pos/cart/items", bearer(t, "u1", entity.RoleCashier), dto.AddItemRequest{ItemID: "nope"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
