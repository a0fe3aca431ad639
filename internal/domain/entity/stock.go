package entity

import "time"

// Direction sentido de un ajuste de stock.
type Direction string

const (
	DirectionIncrease Direction = "increase"
	DirectionDecrease Direction = "decrease"
)

// Inverse devuelve la dirección contraria (usada al revertir un borrado).
func (d Direction) Inverse() Direction {
	if d == DirectionIncrease {
		return DirectionDecrease
	}
	return DirectionIncrease
}

// StockStatus banda de alerta del stock actual.
type StockStatus string

const (
	StockLow    StockStatus = "low"
	StockMedium StockStatus = "medium"
	StockHigh   StockStatus = "high"
)

// StockLevel es la fila única con la cantidad autoritativa. Quantity nunca es negativa.
type StockLevel struct {
	Quantity  int64
	UpdatedAt time.Time
}
