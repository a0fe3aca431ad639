package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
)

// StockResponse stock actual con su banda de alerta.
type StockResponse struct {
	Quantity  int64      `json:"quantity"`
	Status    string     `json:"status"` // low | medium | high
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// ToStockResponse mapea la vista del ledger; UpdatedAt se omite si aún no hay fila.
func ToStockResponse(v *inventory.StockView) *StockResponse {
	out := &StockResponse{Quantity: v.Quantity, Status: string(v.Status)}
	if !v.UpdatedAt.IsZero() {
		updated := v.UpdatedAt
		out.UpdatedAt = &updated
	}
	return out
}

// SetPriceRequest body para POST /api/prices.
type SetPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PriceResponse un registro del histórico de precios.
type PriceResponse struct {
	ID            string          `json:"id"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	EffectiveFrom time.Time       `json:"effective_from"`
	Active        bool            `json:"active"`
}

// ToPriceResponse mapea un PriceRecord.
func ToPriceResponse(p *entity.PriceRecord) *PriceResponse {
	return &PriceResponse{ID: p.ID, UnitPrice: p.UnitPrice, EffectiveFrom: p.EffectiveFrom, Active: p.Active}
}

// SummaryResponse consolidado mensual.
type SummaryResponse struct {
	MonthKey         string          `json:"month_key"`
	TotalEntries     int64           `json:"total_entries"`
	TotalSalesQty    int64           `json:"total_sales_qty"`
	TotalLosses      int64           `json:"total_losses"`
	TotalConsumption int64           `json:"total_consumption"`
	Revenue          decimal.Decimal `json:"revenue"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`
}

// ToSummaryResponse mapea un MonthlySummary.
func ToSummaryResponse(s *entity.MonthlySummary) *SummaryResponse {
	return &SummaryResponse{
		MonthKey:         s.MonthKey,
		TotalEntries:     s.TotalEntries,
		TotalSalesQty:    s.TotalSalesQty,
		TotalLosses:      s.TotalLosses,
		TotalConsumption: s.TotalConsumption,
		Revenue:          s.Revenue,
		TotalExpenses:    s.TotalExpenses,
		NetProfit:        s.NetProfit,
	}
}

// YearSummaryResponse filas del año en orden ascendente.
type YearSummaryResponse struct {
	Year   string             `json:"year"`
	Months []*SummaryResponse `json:"months"`
}

// ToYearSummaryResponse mapea los consolidados de un año.
func ToYearSummaryResponse(year string, list []*entity.MonthlySummary) *YearSummaryResponse {
	months := make([]*SummaryResponse, 0, len(list))
	for _, s := range list {
		months = append(months, ToSummaryResponse(s))
	}
	return &YearSummaryResponse{Year: year, Months: months}
}

// MonthsResponse meses con movimientos (siempre incluye el actual).
type MonthsResponse struct {
	Months []string `json:"months"`
}
