package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord versión del precio unitario. Como máximo un registro tiene Active = true;
// los anteriores quedan como histórico y nunca se borran.
type PriceRecord struct {
	ID            string
	UnitPrice     decimal.Decimal
	EffectiveFrom time.Time
	Active        bool
}
