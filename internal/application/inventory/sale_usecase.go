package inventory

import (
	"context"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

const maxCustomerNameLength = 100

// SaleInput entrada para registrar una venta. UnitPrice y TotalValue son opcionales:
// si viene TotalValue se deriva el unitario; si viene solo UnitPrice se deriva el total;
// si no viene ninguno se usa el precio activo.
type SaleInput struct {
	Quantity     int64
	UnitPrice    *decimal.Decimal
	TotalValue   *decimal.Decimal
	Note         string
	CustomerID   string
	CustomerName string
	Actor        Actor
}

// SaleUseCase registra y revierte ventas.
type SaleUseCase struct {
	log txLog
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner ports.TxRunner, repos ports.Repos, stock *StockLedger, summaries *analytics.SummaryAggregator) *SaleUseCase {
	return &SaleUseCase{log: newTxLog(txRunner, repos, stock, summaries)}
}

// Register valida, resuelve el precio, descuenta stock y registra la venta.
// Falla con ErrInsufficientStock si no hay stock y con ErrNoActivePrice si no hay
// precio informado ni activo.
func (uc *SaleUseCase) Register(ctx context.Context, in SaleInput) (string, error) {
	if err := ledger.ValidateQuantity(in.Quantity); err != nil {
		return "", err
	}
	if in.UnitPrice != nil {
		if err := ledger.ValidateUnitPrice(*in.UnitPrice); err != nil {
			return "", err
		}
	}
	if in.TotalValue != nil && in.TotalValue.IsNegative() {
		return "", domain.Validation("el valor total no puede ser negativo")
	}
	note, err := ledger.NormalizeNote(in.Note)
	if err != nil {
		return "", err
	}
	customerName, err := ledger.NormalizeNote(in.CustomerName)
	if err != nil {
		return "", err
	}
	if utf8.RuneCountInString(customerName) > maxCustomerNameLength {
		return "", domain.Validation("el nombre del cliente debe tener como máximo %d caracteres", maxCustomerNameLength)
	}

	t := &entity.Transaction{
		Kind:         entity.KindSale,
		Quantity:     in.Quantity,
		Note:         note,
		ActorID:      in.Actor.ID,
		ActorName:    in.Actor.Name,
		CustomerID:   in.CustomerID,
		CustomerName: customerName,
	}
	return uc.log.register(ctx, t, func(ctx context.Context, tx ports.Repos, t *entity.Transaction) error {
		unit, total, err := ledger.ResolveSalePrice(t.Quantity, in.UnitPrice, in.TotalValue, func() (*decimal.Decimal, error) {
			active, err := tx.Prices.GetActive(ctx)
			if err != nil || active == nil {
				return nil, err
			}
			return &active.UnitPrice, nil
		})
		if err != nil {
			return err
		}
		t.UnitPrice, t.TotalValue = unit, total
		return nil
	})
}

// Remove borra la venta y devuelve los ovos al stock.
func (uc *SaleUseCase) Remove(ctx context.Context, id string) (*Reversal, error) {
	return uc.log.remove(ctx, entity.KindSale, id)
}

// List lista las ventas del mes (vacío = mes actual).
func (uc *SaleUseCase) List(ctx context.Context, monthKey string) ([]*entity.Transaction, error) {
	return uc.log.list(ctx, entity.KindSale, monthKey)
}

// CurrentMonth mes que lista List cuando no se indica uno.
func (uc *SaleUseCase) CurrentMonth() string { return uc.log.summaries.CurrentMonth() }

// Get obtiene una venta por ID.
func (uc *SaleUseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	return uc.log.get(ctx, entity.KindSale, id)
}
