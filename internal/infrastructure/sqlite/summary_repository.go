package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo resúmenes mensuales sobre SQLite.
type SummaryRepo struct {
	q Querier
}

// NewSummaryRepository construye el adaptador. Pasar db o tx.
func NewSummaryRepository(q Querier) *SummaryRepo {
	return &SummaryRepo{q: q}
}

const summaryColumns = `month_key, total_entries, total_sales_qty, total_losses, total_consumption,
	revenue, total_expenses, net_profit`

// Upsert inserta o reemplaza el resumen del mes.
func (r *SummaryRepo) Upsert(ctx context.Context, s *entity.MonthlySummary) error {
	query := `INSERT INTO monthly_summaries (` + summaryColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (month_key) DO UPDATE SET
			total_entries = excluded.total_entries,
			total_sales_qty = excluded.total_sales_qty,
			total_losses = excluded.total_losses,
			total_consumption = excluded.total_consumption,
			revenue = excluded.revenue,
			total_expenses = excluded.total_expenses,
			net_profit = excluded.net_profit`
	_, err := r.q.ExecContext(ctx, query,
		s.MonthKey, s.TotalEntries, s.TotalSalesQty, s.TotalLosses, s.TotalConsumption,
		s.Revenue.String(), s.TotalExpenses.String(), s.NetProfit.String(),
	)
	if err != nil {
		return domain.Storage("upsert summary", err)
	}
	return nil
}

// GetByMonth devuelve el resumen del mes o nil si no existe.
func (r *SummaryRepo) GetByMonth(ctx context.Context, monthKey string) (*entity.MonthlySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM monthly_summaries WHERE month_key = ?`
	s, err := scanSummary(r.q.QueryRowContext(ctx, query, monthKey))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, domain.Storage("get summary", err)
	}
	return s, nil
}

// ListByYear devuelve los resúmenes existentes del año, ascendente.
func (r *SummaryRepo) ListByYear(ctx context.Context, year string) ([]*entity.MonthlySummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM monthly_summaries
		WHERE month_key LIKE ?
		ORDER BY month_key ASC`
	rows, err := r.q.QueryContext(ctx, query, year+"-%")
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

func scanSummary(row rowScanner) (*entity.MonthlySummary, error) {
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
