// Package bootstrap arma los servicios del libro sobre un backend ya abierto.
// Lo comparten el servidor HTTP y la CLI de operación.
package bootstrap

import (
	"time"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/application/pricing"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/storage"
	"github.com/jhoicas/Ovos-api/pkg/config"
)

// Services casos de uso listos para inyectar.
type Services struct {
	Stock       *inventory.StockLedger
	Entries     *inventory.MovementUseCase
	Losses      *inventory.MovementUseCase
	Consumption *inventory.MovementUseCase
	Sales       *inventory.SaleUseCase
	Expenses    *inventory.ExpenseUseCase
	Prices      *pricing.PriceRegistry
	Summaries   *analytics.SummaryAggregator
}

// NewServices construye los servicios. Las bandas de stock vienen de la configuración;
// loc es la zona en la que se cuentan los meses (nil = time.Local).
func NewServices(b *storage.Backend, cfg config.StockConfig, loc *time.Location) (*Services, error) {
	bands := ledger.Bands{LowMax: cfg.LowMax, MediumMax: cfg.MediumMax}
	if err := bands.Validate(); err != nil {
		return nil, err
	}
	stock := inventory.NewStockLedger(b.Repos, bands)
	summaries := analytics.NewSummaryAggregator(b.Tx, b.Repos, loc)
	return &Services{
		Stock:       stock,
		Entries:     inventory.NewEntryUseCase(b.Tx, b.Repos, stock, summaries),
		Losses:      inventory.NewLossUseCase(b.Tx, b.Repos, stock, summaries),
		Consumption: inventory.NewConsumptionUseCase(b.Tx, b.Repos, stock, summaries),
		Sales:       inventory.NewSaleUseCase(b.Tx, b.Repos, stock, summaries),
		Expenses:    inventory.NewExpenseUseCase(b.Tx, b.Repos, stock, summaries),
		Prices:      pricing.NewPriceRegistry(b.Tx, b.Repos),
		Summaries:   summaries,
	}, nil
}
