package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind identifica el tipo de transacción del libro de inventario.
type Kind string

// Tipos de transacción.
const (
	KindEntry       Kind = "ENTRY"       // entrada de ovos
	KindSale        Kind = "SALE"        // venta
	KindLoss        Kind = "LOSS"        // quebra / pérdida
	KindConsumption Kind = "CONSUMPTION" // consumo personal
	KindExpense     Kind = "EXPENSE"     // gasto monetario, sin efecto en stock
)

// Kinds lista todos los tipos en orden estable.
var Kinds = []Kind{KindEntry, KindSale, KindLoss, KindConsumption, KindExpense}

// Valid indica si k es un tipo conocido.
func (k Kind) Valid() bool {
	switch k {
	case KindEntry, KindSale, KindLoss, KindConsumption, KindExpense:
		return true
	}
	return false
}

// StockEffect devuelve la dirección con que el tipo afecta el stock al crearse.
// ok es false para Expense.
func (k Kind) StockEffect() (dir Direction, ok bool) {
	switch k {
	case KindEntry:
		return DirectionIncrease, true
	case KindSale, KindLoss, KindConsumption:
		return DirectionDecrease, true
	}
	return "", false
}

// Transaction es un registro inmutable del libro. Solo admite creación y borrado físico.
// Expense usa Amount en lugar de Quantity; Sale lleva además UnitPrice y TotalValue.
type Transaction struct {
	ID           string
	Kind         Kind
	Quantity     int64
	Amount       decimal.Decimal
	UnitPrice    decimal.Decimal
	TotalValue   decimal.Decimal
	OccurredAt   time.Time
	MonthKey     string // "YYYY-MM", derivado de OccurredAt al crear
	Note         string
	ActorID      string
	ActorName    string
	CustomerID   string // solo Sale, atribución libre
	CustomerName string
}
