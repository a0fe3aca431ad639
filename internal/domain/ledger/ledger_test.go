package ledger_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

// ──────────────────────────────────────────────────────────────────────────────
// Bandas de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestBands_Status(t *testing.T) {
	cases := []struct {
		qty  int64
		want entity.StockStatus
	}{
		{0, entity.StockLow},
		{20, entity.StockLow},
		{30, entity.StockLow},
		{31, entity.StockMedium},
		{50, entity.StockMedium},
		{100, entity.StockMedium},
		{101, entity.StockHigh},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ledger.DefaultBands.Status(c.qty), "cantidad %d", c.qty)
	}
}

func TestBands_Validate(t *testing.T) {
	assert.NoError(t, ledger.DefaultBands.Validate())
	assert.Error(t, ledger.Bands{LowMax: 50, MediumMax: 50}.Validate())
	assert.Error(t, ledger.Bands{LowMax: -1, MediumMax: 10}.Validate())
}

// ──────────────────────────────────────────────────────────────────────────────
// Política de precio de venta
// ──────────────────────────────────────────────────────────────────────────────

func noActive() (*decimal.Decimal, error) { return nil, nil }

func TestResolveSalePrice_TotalTienePrioridad(t *testing.T) {
	called := false
	unit, total, err := ledger.ResolveSalePrice(3, ptr(dec("5")), ptr(dec("10")), func() (*decimal.Decimal, error) {
		called = true
		return nil, nil
	})
	require.NoError(t, err)
	assert.False(t, called, "no debe consultar el precio activo")
	assert.True(t, unit.Equal(dec("3.3333")), "unit=%s", unit)
	assert.True(t, total.Equal(dec("10")))
}

func TestResolveSalePrice_DesdePrecioUnitario(t *testing.T) {
	unit, total, err := ledger.ResolveSalePrice(30, ptr(dec("1.50")), nil, noActive)
	require.NoError(t, err)
	assert.True(t, unit.Equal(dec("1.5")))
	assert.Equal(t, "45.00", total.StringFixed(2))
}

func TestResolveSalePrice_RedondeaTotalADosDecimales(t *testing.T) {
	_, total, err := ledger.ResolveSalePrice(7, ptr(dec("0.333")), nil, noActive)
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("2.33")), "total=%s", total)
}

func TestResolveSalePrice_UsaPrecioActivo(t *testing.T) {
	unit, total, err := ledger.ResolveSalePrice(12, nil, nil, func() (*decimal.Decimal, error) {
		return ptr(dec("0.75")), nil
	})
	require.NoError(t, err)
	assert.True(t, unit.Equal(dec("0.75")))
	assert.True(t, total.Equal(dec("9")))
}

func TestResolveSalePrice_SinPrecioActivo(t *testing.T) {
	_, _, err := ledger.ResolveSalePrice(12, nil, nil, noActive)
	assert.ErrorIs(t, err, domain.ErrNoActivePrice)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestResolveSalePrice_Negativos(t *testing.T) {
	_, _, err := ledger.ResolveSalePrice(1, nil, ptr(dec("-1")), noActive)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = ledger.ResolveSalePrice(1, ptr(dec("-0.01")), nil, noActive)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestResolveSalePrice_PropagaErrorDelRegistro(t *testing.T) {
	boom := errors.New("boom")
	_, _, err := ledger.ResolveSalePrice(1, nil, nil, func() (*decimal.Decimal, error) { return nil, boom })
	assert.ErrorIs(t, err, boom)
}

// ──────────────────────────────────────────────────────────────────────────────
// Claves de mes y validación
// ──────────────────────────────────────────────────────────────────────────────

func TestMonthKey(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)

	ts := time.Date(2026, time.March, 9, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-03", ledger.MonthKey(ts, time.UTC))

	// 21:30 del 31 de octubre en UTC-3 se guarda como 00:30 UTC de noviembre
	stored := time.Date(2026, time.October, 31, 21, 30, 0, 0, brt).UTC()
	assert.Equal(t, "2026-10", ledger.MonthKey(stored, brt))
	assert.Equal(t, "2026-11", ledger.MonthKey(stored, time.UTC))

	// 1 de mayo 01:00 UTC sigue siendo abril en UTC-3
	assert.Equal(t, "2026-04", ledger.MonthKey(time.Date(2026, time.May, 1, 1, 0, 0, 0, time.UTC), brt))
}

func TestMonthKey_SinZonaUsaLocal(t *testing.T) {
	ts := time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, ts.In(time.Local).Format("2006-01"), ledger.MonthKey(ts, nil))
}

func TestValidateMonthKey(t *testing.T) {
	assert.NoError(t, ledger.ValidateMonthKey("2026-10"))
	for _, bad := range []string{"", "2026-13", "2026-1", "26-10", "2026/10", "abcd-ef"} {
		assert.ErrorIs(t, ledger.ValidateMonthKey(bad), domain.ErrValidation, bad)
	}
}

func TestValidateYear(t *testing.T) {
	assert.NoError(t, ledger.ValidateYear("2026"))
	assert.ErrorIs(t, ledger.ValidateYear("26"), domain.ErrValidation)
	assert.ErrorIs(t, ledger.ValidateYear("20x6"), domain.ErrValidation)
}

func TestNormalizeNote(t *testing.T) {
	n, err := ledger.NormalizeNote("  bandeja rota  ")
	require.NoError(t, err)
	assert.Equal(t, "bandeja rota", n)

	_, err = ledger.NormalizeNote(strings.Repeat("a", 500))
	assert.NoError(t, err)
	_, err = ledger.NormalizeNote(strings.Repeat("a", 501))
	assert.ErrorIs(t, err, domain.ErrValidation)

	// 500 caracteres acentuados en forma descompuesta cuentan como 500 tras NFC.
	_, err = ledger.NormalizeNote(strings.Repeat("e\u0301", 500))
	assert.NoError(t, err)
}

func TestRequireNote(t *testing.T) {
	_, err := ledger.RequireNote("   ", "descripción")
	assert.ErrorIs(t, err, domain.ErrValidation)
	n, err := ledger.RequireNote(" ração ", "descripción")
	require.NoError(t, err)
	assert.Equal(t, "ração", n)
}

func TestValidateQuantityAndAmount(t *testing.T) {
	assert.ErrorIs(t, ledger.ValidateQuantity(0), domain.ErrValidation)
	assert.ErrorIs(t, ledger.ValidateQuantity(-3), domain.ErrValidation)
	assert.NoError(t, ledger.ValidateQuantity(1))
	assert.ErrorIs(t, ledger.ValidateAmount(decimal.Zero), domain.ErrValidation)
	assert.NoError(t, ledger.ValidateAmount(dec("0.01")))
	assert.NoError(t, ledger.ValidateUnitPrice(decimal.Zero))
	assert.ErrorIs(t, ledger.ValidateUnitPrice(dec("-1")), domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consolidado mensual
// ──────────────────────────────────────────────────────────────────────────────

func TestSummarize(t *testing.T) {
	txs := []*entity.Transaction{
		{Kind: entity.KindEntry, Quantity: 100, MonthKey: "2026-10"},
		{Kind: entity.KindEntry, Quantity: 20, MonthKey: "2026-10"},
		{Kind: entity.KindSale, Quantity: 30, TotalValue: dec("45.00"), MonthKey: "2026-10"},
		{Kind: entity.KindSale, Quantity: 10, TotalValue: dec("12.50"), MonthKey: "2026-10"},
		{Kind: entity.KindLoss, Quantity: 3, MonthKey: "2026-10"},
		{Kind: entity.KindConsumption, Quantity: 6, MonthKey: "2026-10"},
		{Kind: entity.KindExpense, Amount: dec("20.10"), MonthKey: "2026-10"},
		{Kind: entity.KindEntry, Quantity: 999, MonthKey: "2026-09"}, // otro mes
		nil,
	}
	s := ledger.Summarize("2026-10", txs)
	assert.Equal(t, "2026-10", s.MonthKey)
	assert.Equal(t, int64(120), s.TotalEntries)
	assert.Equal(t, int64(40), s.TotalSalesQty)
	assert.Equal(t, int64(3), s.TotalLosses)
	assert.Equal(t, int64(6), s.TotalConsumption)
	assert.True(t, s.Revenue.Equal(dec("57.50")))
	assert.True(t, s.TotalExpenses.Equal(dec("20.10")))
	assert.True(t, s.NetProfit.Equal(dec("37.40")))

	// Idempotencia: misma entrada, mismo resultado.
	assert.True(t, ledger.SameSummary(s, ledger.Summarize("2026-10", txs)))
}

func TestSummarize_MesVacio(t *testing.T) {
	s := ledger.Summarize("2026-01", nil)
	assert.True(t, ledger.SameSummary(entity.EmptySummary("2026-01"), s))
	assert.True(t, s.NetProfit.IsZero())
}
