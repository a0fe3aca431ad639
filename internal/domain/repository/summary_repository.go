package repository

import (
	"context"

	"github.com/jhoicas/Ovos-api/internal/domain/entity"
)

// SummaryRepository persiste los consolidados mensuales (upsert por MonthKey).
type SummaryRepository interface {
	Upsert(ctx context.Context, summary *entity.MonthlySummary) error
	// GetByMonth devuelve nil, nil si el mes no tiene fila.
	GetByMonth(ctx context.Context, monthKey string) (*entity.MonthlySummary, error)
	// ListByYear devuelve los meses del año en orden ascendente.
	ListByYear(ctx context.Context, year string) ([]*entity.MonthlySummary, error)
}
