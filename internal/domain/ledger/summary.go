package ledger

import "github.com/jhoicas/Ovos-api/internal/domain/entity"

// Summarize recalcula el consolidado de un mes a partir de sus transacciones.
// Ignora las que pertenecen a otro mes. Es una función pura: mismas entradas, misma salida.
func Summarize(monthKey string, txs []*entity.Transaction) *entity.MonthlySummary {
	s := entity.EmptySummary(monthKey)
	for _, t := range txs {
		if t == nil || t.MonthKey != monthKey {
			continue
		}
		switch t.Kind {
		case entity.KindEntry:
			s.TotalEntries += t.Quantity
		case entity.KindSale:
			s.TotalSalesQty += t.Quantity
			s.Revenue = s.Revenue.Add(t.TotalValue)
		case entity.KindLoss:
			s.TotalLosses += t.Quantity
		case entity.KindConsumption:
			s.TotalConsumption += t.Quantity
		case entity.KindExpense:
			s.TotalExpenses = s.TotalExpenses.Add(t.Amount)
		}
	}
	s.NetProfit = s.Revenue.Sub(s.TotalExpenses)
	return s
}

// SameSummary compara dos consolidados campo a campo (decimales por valor).
func SameSummary(a, b *entity.MonthlySummary) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.MonthKey == b.MonthKey &&
		a.TotalEntries == b.TotalEntries &&
		a.TotalSalesQty == b.TotalSalesQty &&
		a.TotalLosses == b.TotalLosses &&
		a.TotalConsumption == b.TotalConsumption &&
		a.Revenue.Equal(b.Revenue) &&
		a.TotalExpenses.Equal(b.TotalExpenses) &&
		a.NetProfit.Equal(b.NetProfit)
}
