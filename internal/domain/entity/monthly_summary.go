package entity

import "github.com/shopspring/decimal"

// MonthlySummary consolidado mensual. No es fuente de verdad: siempre se puede
// recalcular sumando las transacciones del mes.
type MonthlySummary struct {
	MonthKey         string
	TotalEntries     int64
	TotalSalesQty    int64
	TotalLosses      int64
	TotalConsumption int64
	Revenue          decimal.Decimal
	TotalExpenses    decimal.Decimal
	NetProfit        decimal.Decimal // Revenue - TotalExpenses
}

// EmptySummary resumen en cero para un mes sin fila.
func EmptySummary(monthKey string) *MonthlySummary {
	return &MonthlySummary{
		MonthKey:      monthKey,
		Revenue:       decimal.Zero,
		TotalExpenses: decimal.Zero,
		NetProfit:     decimal.Zero,
	}
}
