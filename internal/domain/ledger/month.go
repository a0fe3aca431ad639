package ledger

import (
	"time"

	"github.com/jhoicas/Ovos-api/internal/domain"
)

const (
	monthKeyLayout = "2006-01"
	yearLayout     = "2006"
)

// MonthKey formatea t como "YYYY-MM" en la zona horaria de la operación.
// Los timestamps se guardan en UTC; el mes es el del calendario local, así que una
// venta a las 21:30 del 31 en UTC-3 sigue contando en ese mes. loc nil = time.Local.
func MonthKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(monthKeyLayout)
}

// CurrentMonthKey mes en curso en loc.
func CurrentMonthKey(loc *time.Location) string {
	return MonthKey(time.Now(), loc)
}

// ValidateMonthKey exige "YYYY-MM" con mes 01–12.
func ValidateMonthKey(monthKey string) error {
	if len(monthKey) != len(monthKeyLayout) {
		return domain.Validation("mes %q debe tener formato YYYY-MM", monthKey)
	}
	if _, err := time.Parse(monthKeyLayout, monthKey); err != nil {
		return domain.Validation("mes %q debe tener formato YYYY-MM", monthKey)
	}
	return nil
}

// ValidateYear exige "YYYY".
func ValidateYear(year string) error {
	if len(year) != len(yearLayout) {
		return domain.Validation("año %q debe tener formato YYYY", year)
	}
	if _, err := time.Parse(yearLayout, year); err != nil {
		return domain.Validation("año %q debe tener formato YYYY", year)
	}
	return nil
}
