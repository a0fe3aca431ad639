// Package ledger contiene servicios de dominio puros del libro de inventario:
// bandas de stock, derivación de precios de venta, claves de mes y validación de entrada.
package ledger

import (
	"fmt"

	"github.com/jhoicas/Ovos-api/internal/domain/entity"
)

// Bands umbrales de la banda de stock: q <= LowMax es low, q <= MediumMax es medium, resto high.
type Bands struct {
	LowMax    int64
	MediumMax int64
}

// DefaultBands 0–30 low, 31–100 medium, >100 high.
var DefaultBands = Bands{LowMax: 30, MediumMax: 100}

// Validate exige 0 <= LowMax < MediumMax.
func (b Bands) Validate() error {
	if b.LowMax < 0 || b.MediumMax <= b.LowMax {
		return fmt.Errorf("bandas de stock inválidas: low=%d medium=%d", b.LowMax, b.MediumMax)
	}
	return nil
}

// Status clasifica una cantidad en su banda.
func (b Bands) Status(quantity int64) entity.StockStatus {
	switch {
	case quantity <= b.LowMax:
		return entity.StockLow
	case quantity <= b.MediumMax:
		return entity.StockMedium
	default:
		return entity.StockHigh
	}
}
