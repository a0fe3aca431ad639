package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/dto"
	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/application/pricing"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/Ovos-api/internal/interfaces/http"
	"github.com/jhoicas/Ovos-api/pkg/logger"
)

// newAPI arma la API completa sobre SQLite temporal.
func newAPI(t *testing.T) *fiber.App {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ovos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	repos := sqlite.NewRepos(db)
	runner := sqlite.NewTxRunner(db)
	stock := inventory.NewStockLedger(repos, ledger.DefaultBands)
	summaries := analytics.NewSummaryAggregator(runner, repos, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Stock:       stock,
		Entries:     inventory.NewEntryUseCase(runner, repos, stock, summaries),
		Losses:      inventory.NewLossUseCase(runner, repos, stock, summaries),
		Consumption: inventory.NewConsumptionUseCase(runner, repos, stock, summaries),
		Sales:       inventory.NewSaleUseCase(runner, repos, stock, summaries),
		Expenses:    inventory.NewExpenseUseCase(runner, repos, stock, summaries),
		Prices:      pricing.NewPriceRegistry(runner, repos),
		Summaries:   summaries,
		Tokens:      testTokens(t),
		Log:         logger.Nop(),
	})
	return app
}

func call(t *testing.T, app *fiber.App, role, method, path, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestAPI_FlujoEntradaVentaResumen(t *testing.T) {
	app := newAPI(t)
	op := apphttp.RoleOperador

	status, raw := call(t, app, op, http.MethodPost, "/api/entries", `{"quantity":100,"note":"granja norte"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	entryID := decode[dto.CreatedResponse](t, raw).ID
	assert.NotEmpty(t, entryID)

	status, raw = call(t, app, op, http.MethodPost, "/api/sales", `{"quantity":30,"unit_price":"1.50","customer_name":"Bruno"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	saleID := decode[dto.CreatedResponse](t, raw).ID

	status, raw = call(t, app, op, http.MethodGet, "/api/stock", "")
	require.Equal(t, http.StatusOK, status)
	stock := decode[dto.StockResponse](t, raw)
	assert.Equal(t, int64(70), stock.Quantity)
	assert.Equal(t, "medium", stock.Status)
	assert.NotNil(t, stock.UpdatedAt)

	status, raw = call(t, app, op, http.MethodGet, "/api/sales/"+saleID, "")
	require.Equal(t, http.StatusOK, status)
	sale := decode[dto.TransactionResponse](t, raw)
	require.NotNil(t, sale.TotalValue)
	assert.Equal(t, "45", sale.TotalValue.String())
	assert.Equal(t, testUserName, sale.ActorName)
	assert.Equal(t, "Bruno", sale.CustomerName)

	status, raw = call(t, app, op, http.MethodGet, "/api/sales", "")
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.TransactionListResponse](t, raw)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, ledger.CurrentMonthKey(nil), list.MonthKey)

	status, raw = call(t, app, op, http.MethodGet, "/api/summaries/"+ledger.CurrentMonthKey(nil), "")
	require.Equal(t, http.StatusOK, status)
	summary := decode[dto.SummaryResponse](t, raw)
	assert.Equal(t, int64(100), summary.TotalEntries)
	assert.Equal(t, int64(30), summary.TotalSalesQty)
	assert.Equal(t, "45", summary.Revenue.String())

	status, raw = call(t, app, op, http.MethodGet, "/api/months", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{ledger.CurrentMonthKey(nil)}, decode[dto.MonthsResponse](t, raw).Months)
}

func TestAPI_MapeoDeErrores(t *testing.T) {
	app := newAPI(t)
	op := apphttp.RoleOperador

	status, raw := call(t, app, op, http.MethodPost, "/api/entries", `{"quantity":0}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = call(t, app, op, http.MethodPost, "/api/entries", `{"quantity":`)
	assert.Equal(t, http.StatusBadRequest, status)

	status, raw = call(t, app, op, http.MethodPost, "/api/sales", `{"quantity":1,"total_value":"1"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = call(t, app, op, http.MethodPost, "/api/entries", `{"quantity":5}`)
	require.Equal(t, http.StatusCreated, status)
	status, raw = call(t, app, op, http.MethodPost, "/api/sales", `{"quantity":1}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "NO_ACTIVE_PRICE", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = call(t, app, op, http.MethodGet, "/api/losses/no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = call(t, app, op, http.MethodGet, "/api/summaries/2024-13", "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, op, http.MethodGet, "/api/prices/active", "")
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_BorradoRequiereAdminYRechazaConflicto(t *testing.T) {
	app := newAPI(t)

	status, raw := call(t, app, apphttp.RoleOperador, http.MethodPost, "/api/entries", `{"quantity":50}`)
	require.Equal(t, http.StatusCreated, status)
	entryID := decode[dto.CreatedResponse](t, raw).ID
	status, _ = call(t, app, apphttp.RoleOperador, http.MethodPost, "/api/consumption", `{"quantity":30}`)
	require.Equal(t, http.StatusCreated, status)

	status, _ = call(t, app, apphttp.RoleOperador, http.MethodDelete, "/api/entries/"+entryID, "")
	assert.Equal(t, http.StatusForbidden, status)

	status, raw = call(t, app, apphttp.RoleAdmin, http.MethodDelete, "/api/entries/"+entryID, "")
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = call(t, app, apphttp.RoleOperador, http.MethodGet, "/api/stock", "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, int64(20), decode[dto.StockResponse](t, raw).Quantity)
}

func TestAPI_PreciosYGastos(t *testing.T) {
	app := newAPI(t)

	status, _ := call(t, app, apphttp.RoleOperador, http.MethodPost, "/api/prices", `{"unit_price":"0.80"}`)
	assert.Equal(t, http.StatusForbidden, status)

	for _, p := range []string{"1.00", "2.00", "3.00"} {
		status, raw := call(t, app, apphttp.RoleAdmin, http.MethodPost, "/api/prices", `{"unit_price":"`+p+`"}`)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}
	status, raw := call(t, app, apphttp.RoleOperador, http.MethodGet, "/api/prices", "")
	require.Equal(t, http.StatusOK, status)
	history := decode[[]dto.PriceResponse](t, raw)
	require.Len(t, history, 3)
	assert.True(t, history[0].Active)
	assert.Equal(t, "3", history[0].UnitPrice.String())
	assert.False(t, history[1].Active)
	assert.False(t, history[2].Active)

	status, raw = call(t, app, apphttp.RoleOperador, http.MethodPost, "/api/expenses", `{"amount":"12.50","description":"milho"}`)
	require.Equal(t, http.StatusCreated, status, string(raw))
	expenseID := decode[dto.CreatedResponse](t, raw).ID

	status, raw = call(t, app, apphttp.RoleAdmin, http.MethodDelete, "/api/expenses/"+expenseID, "")
	require.Equal(t, http.StatusOK, status, string(raw))
	rev := decode[dto.ReversalResponse](t, raw)
	require.NotNil(t, rev.Amount)
	assert.Equal(t, "12.5", rev.Amount.String())
	assert.Equal(t, ledger.CurrentMonthKey(nil), rev.MonthKey)

	status, raw = call(t, app, apphttp.RoleAdmin, http.MethodPost, "/api/summaries/"+ledger.CurrentMonthKey(nil)+"/recompute", "")
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.True(t, decode[dto.SummaryResponse](t, raw).TotalExpenses.IsZero())
}
