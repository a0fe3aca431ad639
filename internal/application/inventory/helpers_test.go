package inventory_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/application/pricing"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/sqlite"
)

// fixture arma los servicios sobre una base SQLite temporal.
type fixture struct {
	repos       ports.Repos
	stock       *inventory.StockLedger
	summaries   *analytics.SummaryAggregator
	prices      *pricing.PriceRegistry
	entries     *inventory.MovementUseCase
	losses      *inventory.MovementUseCase
	consumption *inventory.MovementUseCase
	sales       *inventory.SaleUseCase
	expenses    *inventory.ExpenseUseCase
}

func newFixture(t *testing.T) *fixture {
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
	return &fixture{
		repos:       repos,
		stock:       stock,
		summaries:   summaries,
		prices:      pricing.NewPriceRegistry(runner, repos),
		entries:     inventory.NewEntryUseCase(runner, repos, stock, summaries),
		losses:      inventory.NewLossUseCase(runner, repos, stock, summaries),
		consumption: inventory.NewConsumptionUseCase(runner, repos, stock, summaries),
		sales:       inventory.NewSaleUseCase(runner, repos, stock, summaries),
		expenses:    inventory.NewExpenseUseCase(runner, repos, stock, summaries),
	}
}

var operator = inventory.Actor{ID: "u-1", Name: "Maria"}

func (f *fixture) entry(t *testing.T, qty int64) string {
	t.Helper()
	id, err := f.entries.Register(context.Background(), inventory.MovementInput{Quantity: qty, Actor: operator})
	require.NoError(t, err)
	return id
}

func (f *fixture) stockQty(t *testing.T) int64 {
	t.Helper()
	v, err := f.stock.Current(context.Background())
	require.NoError(t, err)
	return v.Quantity
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
