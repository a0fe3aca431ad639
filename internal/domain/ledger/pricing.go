package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/domain"
)

// Precisión de la derivación de precios de venta.
const (
	UnitPricePlaces  = 4
	TotalValuePlaces = 2
)

// UnitPriceFromTotal unit_price = round(total / quantity, 4).
func UnitPriceFromTotal(quantity int64, total decimal.Decimal) decimal.Decimal {
	return total.Div(decimal.NewFromInt(quantity)).Round(UnitPricePlaces)
}

// TotalFromUnitPrice total_value = round(quantity * unit_price, 2).
func TotalFromUnitPrice(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(unitPrice).Round(TotalValuePlaces)
}

// ResolveSalePrice aplica la política de precio de una venta, en orden:
// total informado, precio unitario informado, precio activo. activePrice solo se
// invoca si no vino ninguno de los dos; si devuelve nil la venta falla con ErrNoActivePrice.
func ResolveSalePrice(
	quantity int64,
	unitPrice, totalValue *decimal.Decimal,
	activePrice func() (*decimal.Decimal, error),
) (unit, total decimal.Decimal, err error) {
	if quantity <= 0 {
		return decimal.Zero, decimal.Zero, domain.Validation("la cantidad debe ser un entero positivo")
	}
	switch {
	case totalValue != nil:
		if totalValue.IsNegative() {
			return decimal.Zero, decimal.Zero, domain.Validation("el valor total no puede ser negativo")
		}
		return UnitPriceFromTotal(quantity, *totalValue), *totalValue, nil
	case unitPrice != nil:
		if unitPrice.IsNegative() {
			return decimal.Zero, decimal.Zero, domain.Validation("el precio unitario no puede ser negativo")
		}
		return *unitPrice, TotalFromUnitPrice(quantity, *unitPrice), nil
	}
	active, err := activePrice()
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	if active == nil {
		return decimal.Zero, decimal.Zero, domain.ErrNoActivePrice
	}
	return *active, TotalFromUnitPrice(quantity, *active), nil
}
