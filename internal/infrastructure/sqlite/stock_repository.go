package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo fila única de stock sobre SQLite.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar db o tx.
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual; cero si todavía no hay fila.
func (r *StockRepo) Get(ctx context.Context) (*entity.StockLevel, error) {
	s, err := r.scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &entity.StockLevel{}, nil
		}
		return nil, domain.Storage("get stock", err)
	}
	return s, nil
}

// GetForUpdate asegura la fila. El lock de escritura ya lo tiene la transacción
// IMMEDIATE desde su inicio, así que basta con leer.
func (r *StockRepo) GetForUpdate(ctx context.Context) (*entity.StockLevel, error) {
	const ensure = `INSERT INTO stock_level (id, quantity, updated_at) VALUES (1, 0, ?)
		ON CONFLICT (id) DO NOTHING`
	if _, err := r.q.ExecContext(ctx, ensure, formatTime(time.Now())); err != nil {
		return nil, domain.Storage("ensure stock row", err)
	}
	s, err := r.scan(ctx)
	if err != nil {
		return nil, domain.Storage("get stock for update", err)
	}
	return s, nil
}

// Upsert escribe la cantidad; el CHECK de la tabla se traduce a ErrInsufficientStock.
func (r *StockRepo) Upsert(ctx context.Context, stock *entity.StockLevel) error {
	const query = `
		INSERT INTO stock_level (id, quantity, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET quantity = excluded.quantity, updated_at = excluded.updated_at`
	_, err := r.q.ExecContext(ctx, query, stock.Quantity, formatTime(stock.UpdatedAt))
	if err != nil {
		if isConstraintViolation(err, "CHECK") {
			return domain.ErrInsufficientStock
		}
		return domain.Storage("upsert stock", err)
	}
	return nil
}

func (r *StockRepo) scan(ctx context.Context) (*entity.StockLevel, error) {
	const query = `SELECT quantity, updated_at FROM stock_level WHERE id = 1`
	var s entity.StockLevel
	var updated string
	if err := r.q.QueryRowContext(ctx, query).Scan(&s.Quantity, &updated); err != nil {
		return nil, err
	}
	t, err := parseTime(updated)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = t
	return &s, nil
}
