package repository

import (
	"context"

	"github.com/jhoicas/Ovos-api/internal/domain/entity"
)

// PriceRepository define el puerto de persistencia del histórico de precios.
type PriceRepository interface {
	// DeactivateAll marca todos los registros como inactivos.
	DeactivateAll(ctx context.Context) error
	Create(ctx context.Context, price *entity.PriceRecord) error
	// GetActive devuelve nil, nil si no hay precio activo.
	GetActive(ctx context.Context) (*entity.PriceRecord, error)
	// List ordena por EffectiveFrom descendente.
	List(ctx context.Context) ([]*entity.PriceRecord, error)
}
