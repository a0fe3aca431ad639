package inventory

import (
	"context"
	"math"
	"time"

	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

// StockView cantidad actual con su banda de alerta.
type StockView struct {
	Quantity  int64
	Status    entity.StockStatus
	UpdatedAt time.Time
}

// StockLedger es el único que escribe la fila de stock.
type StockLedger struct {
	repos ports.Repos
	bands ledger.Bands
	now   func() time.Time
}

// NewStockLedger construye el ledger con las bandas indicadas.
func NewStockLedger(repos ports.Repos, bands ledger.Bands) *StockLedger {
	return &StockLedger{repos: repos, bands: bands, now: time.Now}
}

// Current devuelve la cantidad y su banda; {0, low} si aún no hay fila.
func (l *StockLedger) Current(ctx context.Context) (*StockView, error) {
	stock, err := l.repos.Stock.Get(ctx)
	if err != nil {
		return nil, err
	}
	return &StockView{
		Quantity:  stock.Quantity,
		Status:    l.bands.Status(stock.Quantity),
		UpdatedAt: stock.UpdatedAt,
	}, nil
}

// Adjust aplica delta en la dirección dada y devuelve la nueva cantidad.
// Debe ejecutarse dentro de una unidad de trabajo: bloquea la fila (GetForUpdate),
// calcula y escribe. Si una disminución dejaría el stock negativo devuelve
// ErrInsufficientStock sin escribir nada.
func (l *StockLedger) Adjust(ctx context.Context, tx ports.Repos, delta int64, dir entity.Direction) (int64, error) {
	if delta <= 0 {
		return 0, domain.Validation("el ajuste de stock debe ser positivo")
	}
	stock, err := tx.Stock.GetForUpdate(ctx)
	if err != nil {
		return 0, err
	}
	newQty := stock.Quantity
	switch dir {
	case entity.DirectionIncrease:
		if delta > math.MaxInt64-newQty {
			return 0, domain.Validation("el ajuste de %d desborda el stock actual (%d)", delta, newQty)
		}
		newQty += delta
	case entity.DirectionDecrease:
		newQty -= delta
	default:
		return 0, domain.Validation("dirección de ajuste inválida: %q", dir)
	}
	if newQty < 0 {
		return 0, domain.ErrInsufficientStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = l.now().UTC()
	if err := tx.Stock.Upsert(ctx, stock); err != nil {
		return 0, err
	}
	return newQty, nil
}
