package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

var _ repository.PriceRepository = (*PriceRepo)(nil)

// PriceRepo implementación de PriceRepository sobre PostgreSQL.
type PriceRepo struct {
	q Querier
}

// NewPriceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceRepository(q Querier) *PriceRepo {
	return &PriceRepo{q: q}
}

// DeactivateAll marca como inactivo el precio vigente.
func (r *PriceRepo) DeactivateAll(ctx context.Context) error {
	const query = `UPDATE price_records SET active = false WHERE active`
	if _, err := r.q.Exec(ctx, query); err != nil {
		return domain.Storage("deactivate prices", err)
	}
	return nil
}

// Create inserta un registro de precio. Un segundo activo concurrente viola el índice
// parcial y se reporta como conflicto.
func (r *PriceRepo) Create(ctx context.Context, p *entity.PriceRecord) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.EffectiveFrom.IsZero() {
		p.EffectiveFrom = time.Now().UTC()
	}
	const query = `
		INSERT INTO price_records (id, unit_price, effective_from, active)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, p.ID, p.UnitPrice, p.EffectiveFrom.UTC(), p.Active)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return domain.Storage("create price", err)
	}
	return nil
}

// GetActive devuelve el precio activo o nil si no existe.
func (r *PriceRepo) GetActive(ctx context.Context) (*entity.PriceRecord, error) {
	const query = `SELECT id, unit_price, effective_from, active FROM price_records WHERE active`
	p, err := scanPrice(r.q.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Storage("get active price", err)
	}
	return p, nil
}

// List devuelve el histórico, más reciente primero.
func (r *PriceRepo) List(ctx context.Context) ([]*entity.PriceRecord, error) {
	const query = `
		SELECT id, unit_price, effective_from, active
		FROM price_records
		ORDER BY effective_from DESC, seq DESC`
	rows, err := r.q.Query(ctx, query)
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

func scanPrice(row pgxScanner) (*entity.PriceRecord, error) {
	var p entity.PriceRecord
	if err := row.Scan(&p.ID, &p.UnitPrice, &p.EffectiveFrom, &p.Active); err != nil {
		return nil, err
	}
	p.EffectiveFrom = p.EffectiveFrom.UTC()
	return &p, nil
}
