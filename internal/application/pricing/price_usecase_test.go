package pricing_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ovos-api/internal/application/pricing"
	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/sqlite"
)

func newRegistry(t *testing.T) *pricing.PriceRegistry {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "ovos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))
	return pricing.NewPriceRegistry(sqlite.NewTxRunner(db), sqlite.NewRepos(db))
}

func TestGetActive_SinPrecio(t *testing.T) {
	r := newRegistry(t)
	p, err := r.GetActive(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)

	h, err := r.History(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, h)
	assert.Empty(t, h)
}

// Tres precios seguidos → histórico de 3 y solo el último activo.
func TestSetPrice_SoloElUltimoActivo(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	var last string
	for _, p := range []string{"1.00", "2.00", "3.00"} {
		id, err := r.SetPrice(ctx, decimal.RequireFromString(p))
		require.NoError(t, err)
		last = id
	}

	h, err := r.History(ctx)
	require.NoError(t, err)
	require.Len(t, h, 3)
	active := 0
	for _, rec := range h {
		if rec.Active {
			active++
			assert.Equal(t, last, rec.ID)
			assert.True(t, rec.UnitPrice.Equal(decimal.RequireFromString("3")))
		}
	}
	assert.Equal(t, 1, active)
	assert.Equal(t, last, h[0].ID)

	cur, err := r.GetActive(ctx)
	require.NoError(t, err)
	require.NotNil(t, cur)
	assert.Equal(t, last, cur.ID)
}

func TestSetPrice_CeroValidoNegativoNo(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	_, err := r.SetPrice(ctx, decimal.Zero)
	assert.NoError(t, err)

	_, err = r.SetPrice(ctx, decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, domain.ErrValidation)

	h, err := r.History(ctx)
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

func TestSetPrice_ConcurrenteUnSoloActivo(t *testing.T) {
	r := newRegistry(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 1; i <= 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.SetPrice(ctx, decimal.NewFromInt(int64(i)))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	h, err := r.History(ctx)
	require.NoError(t, err)
	assert.Len(t, h, 8)
	active := 0
	for _, rec := range h {
		if rec.Active {
			active++
		}
	}
	assert.Equal(t, 1, active)
}
