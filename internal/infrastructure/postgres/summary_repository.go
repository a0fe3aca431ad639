package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo implementación de SummaryRepository sobre PostgreSQL.
type SummaryRepo struct {
	q Querier
}

// NewSummaryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSummaryRepository(q Querier) *SummaryRepo {
	return &SummaryRepo{q: q}
}

const summaryColumns = `month_key, total_entries, total_sales_qty, total_losses, total_consumption,
	revenue, total_expenses, net_profit`

// Upsert inserta o reemplaza el resumen del mes.
func (r *SummaryRepo) Upsert(ctx context.Context, s *entity.MonthlySummary) error {
	query := `INSERT INTO monthly_summaries (` + summaryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (month_key) DO UPDATE SET
			total_entries = EXCLUDED.total_entries,
			total_sales_qty = EXCLUDED.total_sales_qty,
			total_losses = EXCLUDED.total_losses,
			total_consumption = EXCLUDED.total_consumption,
			revenue = EXCLUDED.revenue,
			total_expenses = EXCLUDED.total_expenses,
			net_profit = EXCLUDED.net_profit`
	_, err := r.q.Exec(ctx, query,
		s.MonthKey, s.TotalEntries, s.TotalSalesQty, s.TotalLosses, s.TotalConsumption,
		s.Revenue, s.TotalExpenses, s.NetProfit,
	)
	if err != nil {
		return domain.Storage("upsert summary", err)
	}
	return nil
}

// GetByMonth devuelve el resumen del mes o nil si no existe.
func (r *SummaryRepo) GetByMonth(ctx context.Context, monthKey string) (*entity.MonthlySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM monthly_summaries WHERE month_key = $1`
	s, err := scanSummary(r.q.QueryRow(ctx, query, monthKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Storage("get summary", err)
	}
	return s, nil
}

// ListByYear devuelve los resúmenes existentes del año, en orden ascendente.
func (r *SummaryRepo) ListByYear(ctx context.Context, year string) ([]*entity.MonthlySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM monthly_summaries
		WHERE month_key LIKE $1
		ORDER BY month_key ASC`
	rows, err := r.q.Query(ctx, query, year+"-%")
	if err != nil {
		return nil, domain.Storage("list summaries", err)
	}
	defer rows.Close()

	var list []*entity.MonthlySummary
	for rows.Next() {
		s, err := scanSummary(rows)
		if err != nil {
			return nil, domain.Storage("scan summary", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list summaries", err)
	}
	return list, nil
}

func scanSummary(row pgxScanner) (*entity.MonthlySummary, error) {
	var s entity.MonthlySummary
	err := row.Scan(
		&s.MonthKey, &s.TotalEntries, &s.TotalSalesQty, &s.TotalLosses, &s.TotalConsumption,
		&s.Revenue, &s.TotalExpenses, &s.NetProfit,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
