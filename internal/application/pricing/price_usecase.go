// Package pricing gestiona el histórico versionado del precio unitario.
package pricing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

// PriceRegistry casos de uso del precio activo. Como máximo un registro activo a la vez.
type PriceRegistry struct {
	txRunner ports.TxRunner
	repos    ports.Repos
}

// NewPriceRegistry construye el caso de uso.
func NewPriceRegistry(txRunner ports.TxRunner, repos ports.Repos) *PriceRegistry {
	return &PriceRegistry{txRunner: txRunner, repos: repos}
}

// SetPrice desactiva todos los precios e inserta uno nuevo activo en la misma transacción;
// no existe ventana con cero o más de un precio activo. Devuelve el ID del nuevo registro.
func (r *PriceRegistry) SetPrice(ctx context.Context, unitPrice decimal.Decimal) (string, error) {
	if err := ledger.ValidateUnitPrice(unitPrice); err != nil {
		return "", err
	}
	price := &entity.PriceRecord{UnitPrice: unitPrice, Active: true}
	err := r.txRunner.Run(ctx, func(tx ports.Repos) error {
		if err := tx.Prices.DeactivateAll(ctx); err != nil {
			return err
		}
		return tx.Prices.Create(ctx, price)
	})
	if err != nil {
		return "", err
	}
	return price.ID, nil
}

// GetActive devuelve el precio vigente o nil si nunca se definió uno.
func (r *PriceRegistry) GetActive(ctx context.Context) (*entity.PriceRecord, error) {
	return r.repos.Prices.GetActive(ctx)
}

// History devuelve todos los precios, del más reciente al más antiguo.
func (r *PriceRegistry) History(ctx context.Context) ([]*entity.PriceRecord, error) {
	list, err := r.repos.Prices.List(ctx)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.PriceRecord{}
	}
	return list, nil
}
