package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/sqlite"
)

func newRepos(t *testing.T) (ports.Repos, *sqlite.TxRunner) {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ovos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	// Migrate es idempotente.
	require.NoError(t, sqlite.Migrate(ctx, db))
	return sqlite.NewRepos(db), sqlite.NewTxRunner(db)
}

func TestTransactionRepo_CreateAsignaCamposYListaDescendente(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	first := &entity.Transaction{Kind: entity.KindSale, Quantity: 3, OccurredAt: base,
		UnitPrice: decimal.RequireFromString("0.8333"), TotalValue: decimal.RequireFromString("2.50"),
		ActorID: "u1", ActorName: "Ana", CustomerName: "Bruno"}
	second := &entity.Transaction{Kind: entity.KindSale, Quantity: 1, OccurredAt: base.Add(time.Hour)}
	other := &entity.Transaction{Kind: entity.KindEntry, Quantity: 50, OccurredAt: base}
	for _, tx := range []*entity.Transaction{first, second, other} {
		require.NoError(t, repos.Transactions.Create(ctx, tx))
	}

	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "2024-03", first.MonthKey)

	list, err := repos.Transactions.ListByMonth(ctx, entity.KindSale, "2024-03")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.True(t, list[1].TotalValue.Equal(decimal.RequireFromString("2.50")))
	assert.True(t, list[1].UnitPrice.Equal(decimal.RequireFromString("0.8333")))
	assert.Equal(t, "Bruno", list[1].CustomerName)
	assert.Equal(t, "", list[1].CustomerID)
	assert.True(t, list[1].OccurredAt.Equal(base))

	empty, err := repos.Transactions.ListByMonth(ctx, entity.KindSale, "2024-04")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransactionRepo_GetYDeleteRespetanElTipo(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	tx := &entity.Transaction{Kind: entity.KindLoss, Quantity: 4, Note: "rotos"}
	require.NoError(t, repos.Transactions.Create(ctx, tx))

	_, err := repos.Transactions.GetByID(ctx, entity.KindSale, tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repos.Transactions.GetByID(ctx, entity.KindLoss, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotos", got.Note)

	deleted, err := repos.Transactions.Delete(ctx, entity.KindLoss, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted.Quantity)
	assert.Equal(t, tx.MonthKey, deleted.MonthKey)

	_, err = repos.Transactions.Delete(ctx, entity.KindLoss, tx.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransactionRepo_Months(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	for _, at := range []time.Time{
		time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
	} {
		require.NoError(t, repos.Transactions.Create(ctx, &entity.Transaction{Kind: entity.KindEntry, Quantity: 1, OccurredAt: at}))
	}

	months, err := repos.Transactions.Months(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03", "2024-01"}, months)
}

func TestStockRepo_GetSinFilaDevuelveCero(t *testing.T) {
	repos, runner := newRepos(t)
	ctx := context.Background()

	s, err := repos.Stock.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.Quantity)

	err = runner.Run(ctx, func(tx ports.Repos) error {
		cur, err := tx.Stock.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		cur.Quantity += 40
		cur.UpdatedAt = time.Now()
		return tx.Stock.Upsert(ctx, cur)
	})
	require.NoError(t, err)

	s, err = repos.Stock.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(40), s.Quantity)
	assert.False(t, s.UpdatedAt.IsZero())
}

func TestStockRepo_CantidadNegativaViolaCheck(t *testing.T) {
	repos, _ := newRepos(t)
	err := repos.Stock.Upsert(context.Background(), &entity.StockLevel{Quantity: -1, UpdatedAt: time.Now()})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestTxRunner_RollbackDescartaCambios(t *testing.T) {
	repos, runner := newRepos(t)
	ctx := context.Background()

	err := runner.Run(ctx, func(tx ports.Repos) error {
		if err := tx.Transactions.Create(ctx, &entity.Transaction{Kind: entity.KindEntry, Quantity: 5}); err != nil {
			return err
		}
		return domain.ErrConflict
	})
	assert.ErrorIs(t, err, domain.ErrConflict)

	months, err := repos.Transactions.Months(ctx)
	require.NoError(t, err)
	assert.Empty(t, months)
}

func TestPriceRepo_UnSoloActivo(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	active, err := repos.Prices.GetActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)

	first := &entity.PriceRecord{UnitPrice: decimal.RequireFromString("0.80"), Active: true,
		EffectiveFrom: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repos.Prices.Create(ctx, first))

	// un segundo activo sin desactivar viola el índice parcial
	err = repos.Prices.Create(ctx, &entity.PriceRecord{UnitPrice: decimal.RequireFromString("0.90"), Active: true})
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, repos.Prices.DeactivateAll(ctx))
	second := &entity.PriceRecord{UnitPrice: decimal.RequireFromString("0.90"), Active: true,
		EffectiveFrom: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repos.Prices.Create(ctx, second))

	active, err = repos.Prices.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, second.ID, active.ID)

	list, err := repos.Prices.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.False(t, list[1].Active)
}

func TestSummaryRepo_UpsertYListByYear(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()

	missing, err := repos.Summaries.GetByMonth(ctx, "2024-02")
	require.NoError(t, err)
	assert.Nil(t, missing)

	s := entity.EmptySummary("2024-02")
	s.TotalEntries = 10
	s.Revenue = decimal.RequireFromString("12.50")
	s.NetProfit = s.Revenue
	require.NoError(t, repos.Summaries.Upsert(ctx, s))

	s.TotalEntries = 12
	require.NoError(t, repos.Summaries.Upsert(ctx, s))
	require.NoError(t, repos.Summaries.Upsert(ctx, entity.EmptySummary("2024-01")))
	require.NoError(t, repos.Summaries.Upsert(ctx, entity.EmptySummary("2023-12")))

	got, err := repos.Summaries.GetByMonth(ctx, "2024-02")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(12), got.TotalEntries)
	assert.True(t, got.Revenue.Equal(decimal.RequireFromString("12.5")))

	year, err := repos.Summaries.ListByYear(ctx, "2024")
	require.NoError(t, err)
	require.Len(t, year, 2)
	assert.Equal(t, "2024-01", year[0].MonthKey)
	assert.Equal(t, "2024-02", year[1].MonthKey)
}

func TestRepos_EmpateDeTimestampSigueOrdenDeInsercion(t *testing.T) {
	repos, _ := newRepos(t)
	ctx := context.Background()
	at := time.Date(2024, 7, 10, 12, 0, 0, 0, time.UTC)

	var txIDs, priceIDs []string
	for i := 0; i < 4; i++ {
		tx := &entity.Transaction{Kind: entity.KindEntry, Quantity: int64(i + 1), OccurredAt: at}
		require.NoError(t, repos.Transactions.Create(ctx, tx))
		txIDs = append(txIDs, tx.ID)

		p := &entity.PriceRecord{UnitPrice: decimal.NewFromInt(int64(i)), EffectiveFrom: at}
		require.NoError(t, repos.Prices.Create(ctx, p))
		priceIDs = append(priceIDs, p.ID)
	}

	list, err := repos.Transactions.ListByMonth(ctx, entity.KindEntry, "2024-07")
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i, tx := range list {
		assert.Equal(t, txIDs[len(txIDs)-1-i], tx.ID)
	}

	prices, err := repos.Prices.List(ctx)
	require.NoError(t, err)
	require.Len(t, prices, 4)
	for i, p := range prices {
		assert.Equal(t, priceIDs[len(priceIDs)-1-i], p.ID)
	}
}
