// Package analytics contiene el agregador de consolidados mensuales y anuales.
// Los resúmenes se derivan siempre de las transacciones; no se confía en contadores incrementales.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

// SummaryAggregator recalcula y consulta los consolidados mensuales.
type SummaryAggregator struct {
	txRunner ports.TxRunner
	repos    ports.Repos
	loc      *time.Location
	now      func() time.Time
}

// NewSummaryAggregator construye el agregador. loc es la zona horaria de la operación
// con la que se asigna el mes a cada transacción; nil = time.Local.
func NewSummaryAggregator(txRunner ports.TxRunner, repos ports.Repos, loc *time.Location) *SummaryAggregator {
	if loc == nil {
		loc = time.Local
	}
	return &SummaryAggregator{txRunner: txRunner, repos: repos, loc: loc, now: time.Now}
}

// MonthOf mes al que pertenece un instante.
func (a *SummaryAggregator) MonthOf(t time.Time) string {
	return ledger.MonthKey(t, a.loc)
}

// CurrentMonth mes en curso.
func (a *SummaryAggregator) CurrentMonth() string {
	return a.MonthOf(a.now())
}

// RecomputeInTx suma las transacciones del mes usando los repositorios de la transacción
// del caller y hace upsert del consolidado. Los servicios de inventario lo invocan dentro
// de su propia unidad de trabajo.
func (a *SummaryAggregator) RecomputeInTx(ctx context.Context, tx ports.Repos, monthKey string) (*entity.MonthlySummary, error) {
	var all []*entity.Transaction
	for _, kind := range entity.Kinds {
		list, err := tx.Transactions.ListByMonth(ctx, kind, monthKey)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
	}
	summary := ledger.Summarize(monthKey, all)
	if err := tx.Summaries.Upsert(ctx, summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// Recompute recalcula el mes en su propia transacción.
func (a *SummaryAggregator) Recompute(ctx context.Context, monthKey string) (*entity.MonthlySummary, error) {
	if err := ledger.ValidateMonthKey(monthKey); err != nil {
		return nil, err
	}
	var out *entity.MonthlySummary
	err := a.txRunner.Run(ctx, func(tx ports.Repos) error {
		s, err := a.RecomputeInTx(ctx, tx, monthKey)
		out = s
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("recalcular %s: %w", monthKey, err)
	}
	return out, nil
}

// RecomputeYear recalcula los meses del año que tienen transacciones o fila de resumen.
// Un mes que quedó sin transacciones vuelve a cero. Útil tras restaurar un backup.
func (a *SummaryAggregator) RecomputeYear(ctx context.Context, year string) ([]*entity.MonthlySummary, error) {
	if err := ledger.ValidateYear(year); err != nil {
		return nil, err
	}
	set := map[string]struct{}{}
	months, err := a.repos.Transactions.Months(ctx)
	if err != nil {
		return nil, err
	}
	for _, m := range months {
		if strings.HasPrefix(m, year+"-") {
			set[m] = struct{}{}
		}
	}
	existing, err := a.repos.Summaries.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	for _, s := range existing {
		set[s.MonthKey] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for m := range set {
		keys = append(keys, m)
	}
	sort.Strings(keys)

	out := make([]*entity.MonthlySummary, 0, len(keys))
	for _, m := range keys {
		s, err := a.Recompute(ctx, m)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Get devuelve el consolidado del mes; todo en cero si el mes aún no tiene fila.
func (a *SummaryAggregator) Get(ctx context.Context, monthKey string) (*entity.MonthlySummary, error) {
	if err := ledger.ValidateMonthKey(monthKey); err != nil {
		return nil, err
	}
	s, err := a.repos.Summaries.GetByMonth(ctx, monthKey)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return entity.EmptySummary(monthKey), nil
	}
	return s, nil
}

// GetYear devuelve las filas del año en orden ascendente de mes.
func (a *SummaryAggregator) GetYear(ctx context.Context, year string) ([]*entity.MonthlySummary, error) {
	if err := ledger.ValidateYear(year); err != nil {
		return nil, err
	}
	list, err := a.repos.Summaries.ListByYear(ctx, year)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.MonthlySummary{}
	}
	return list, nil
}

// Months devuelve los meses con movimientos en orden descendente, incluyendo siempre el actual.
func (a *SummaryAggregator) Months(ctx context.Context) ([]string, error) {
	months, err := a.repos.Transactions.Months(ctx)
	if err != nil {
		return nil, err
	}
	current := a.CurrentMonth()
	for _, m := range months {
		if m == current {
			return months, nil
		}
	}
	months = append(months, current)
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}
