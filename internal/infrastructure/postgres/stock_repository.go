package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual.
func (r *StockRepo) Get(ctx context.Context) (*entity.StockLevel, error) {
	const query = `SELECT quantity, updated_at FROM stock_level WHERE id = 1`
	var s entity.StockLevel
	err := r.q.QueryRow(ctx, query).Scan(&s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{}, nil
		}
		return nil, domain.Storage("get stock", err)
	}
	return &s, nil
}

// GetForUpdate garantiza que la fila existe y la bloquea (SELECT FOR UPDATE)
// hasta el fin de la transacción; serializa el read-modify-write del stock.
func (r *StockRepo) GetForUpdate(ctx context.Context) (*entity.StockLevel, error) {
	const ensure = `
		INSERT INTO stock_level (id, quantity, updated_at)
		VALUES (1, 0, now())
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.q.Exec(ctx, ensure); err != nil {
		return nil, domain.Storage("ensure stock row", err)
	}
	const query = `SELECT quantity, updated_at FROM stock_level WHERE id = 1 FOR UPDATE`
	var s entity.StockLevel
	if err := r.q.QueryRow(ctx, query).Scan(&s.Quantity, &s.UpdatedAt); err != nil {
		return nil, domain.Storage("get stock for update", err)
	}
	return &s, nil
}

// Upsert escribe la cantidad. El CHECK (quantity >= 0) de la tabla se traduce a ErrInsufficientStock.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.StockLevel) error {
	const query = `
		INSERT INTO stock_level (id, quantity, updated_at)
		VALUES (1, $1, $2)
		ON CONFLICT (id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		return domain.Storage("upsert stock", err)
	}
	return nil
}
