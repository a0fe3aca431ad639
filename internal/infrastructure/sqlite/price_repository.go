package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo histórico de precios sobre SQLite.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar db o tx.
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// DeactivateAll marca como inactivo el precio vigente.
func (r *PriceRepo) DeactivateAll(ctx context.Context) error {
	if _, err := r.q.ExecContext(ctx, `UPDATE price_records SET active = 0 WHERE active = 1`); err != nil {
		return domain.Storage("deactivate prices", err)
	}
	return nil
}

// Create inserta un registro de precio.
func (r *PriceRepo) Create(ctx context.Context, p *entity.PriceRecord) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.EffectiveFrom.IsZero() {
		p.EffectiveFrom = time.Now()
	}
	p.EffectiveFrom = p.EffectiveFrom.UTC()
	const query = `INSERT INTO price_records (id, unit_price, effective_from, active) VALUES (?, ?, ?, ?)`
	_, err := r.q.ExecContext(ctx, query, p.ID, p.UnitPrice.String(), formatTime(p.EffectiveFrom), p.Active)
	if err != nil {
		if isConstraintViolation(err, "UNIQUE") {
			return domain.ErrConflict
		}
		return domain.Storage("create price", err)
	}
	return nil
}

// GetActive devuelve el precio activo o nil si no existe.
func (r *PriceRepo) GetActive(ctx context.Context) (*entity.PriceRecord, error) {
	const query = `SELECT id, unit_price, effective_from, active FROM price_records WHERE active = 1`
	p, err := scanPrice(r.q.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Storage("get active price", err)
	}
	return p, nil
}

// List devuelve el histórico, más reciente primero.
func (r *PriceRepo) List(ctx context.Context) ([]*entity.PriceRecord, error) {
	const query = `SELECT id, unit_price, effective_from, active FROM price_records
		ORDER BY effective_from DESC, rowid DESC`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.Storage("list prices", err)
	}
	defer rows.Close()

	var list []*entity.PriceRecord
	for rows.Next() {
		p, err := scanPrice(rows)
		if err != nil {
			return nil, domain.Storage("scan price", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list prices", err)
	}
	return list, nil
}

func scanPrice(row rowScanner) (*entity.PriceRecord, error) {
	var p entity.PriceRecord
	var effective string
	if err := row.Scan(&p.ID, &p.UnitPrice, &effective, &p.Active); err != nil {
		return nil, err
	}
	t, err := parseTime(effective)
	if err != nil {
		return nil, err
	}
	p.EffectiveFrom = t
	return &p, nil
}
