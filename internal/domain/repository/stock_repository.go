package repository

import (
	"context"

	"github.com/jhoicas/Ovos-api/internal/domain/entity"
)

// StockRepository define el puerto para la fila única de stock.
// Las escrituras solo ocurren dentro de una unidad de trabajo (TxRunner).
type StockRepository interface {
	// Get devuelve el stock actual; cantidad 0 y UpdatedAt cero si aún no hay fila.
	Get(ctx context.Context) (*entity.StockLevel, error)
	// GetForUpdate crea la fila si falta y la bloquea hasta el fin de la transacción.
	GetForUpdate(ctx context.Context) (*entity.StockLevel, error)
	Upsert(ctx context.Context, stock *entity.StockLevel) error
}
