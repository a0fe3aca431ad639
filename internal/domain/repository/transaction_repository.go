package repository

import (
	"context"

	"github.com/jhoicas/Ovos-api/internal/domain/entity"
)

// TransactionRepository es el log de transacciones, único para los cinco tipos
// y parametrizado por entity.Kind.
type TransactionRepository interface {
	// Create asigna ID, OccurredAt y MonthKey cuando vienen vacíos y persiste el registro.
	Create(ctx context.Context, tx *entity.Transaction) error
	// GetByID devuelve domain.ErrNotFound si no existe un registro de ese tipo con ese ID.
	GetByID(ctx context.Context, kind entity.Kind, id string) (*entity.Transaction, error)
	// ListByMonth lista por OccurredAt descendente.
	ListByMonth(ctx context.Context, kind entity.Kind, monthKey string) ([]*entity.Transaction, error)
	// Delete borra el registro y lo devuelve tal como estaba (cantidad/monto y MonthKey original).
	Delete(ctx context.Context, kind entity.Kind, id string) (*entity.Transaction, error)
	// Months devuelve los MonthKey distintos con al menos una transacción, descendente.
	Months(ctx context.Context) ([]string, error)
}
