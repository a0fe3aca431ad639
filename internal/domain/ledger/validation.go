package ledger

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Ovos-api/internal/domain"
)

// MaxNoteLength máximo de caracteres (runas, tras normalizar NFC) de una nota.
const MaxNoteLength = 500

// ValidateQuantity exige un entero positivo.
func ValidateQuantity(quantity int64) error {
	if quantity <= 0 {
		return domain.Validation("la cantidad debe ser un entero positivo")
	}
	return nil
}

// ValidateAmount exige un monto estrictamente positivo.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return domain.Validation("el monto debe ser positivo")
	}
	return nil
}

// ValidateUnitPrice exige un precio no negativo.
func ValidateUnitPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.Validation("el precio no puede ser negativo")
	}
	return nil
}

// NormalizeNote normaliza a NFC, recorta espacios y valida la longitud.
func NormalizeNote(note string) (string, error) {
	n := strings.TrimSpace(norm.NFC.String(note))
	if utf8.RuneCountInString(n) > MaxNoteLength {
		return "", domain.Validation("la nota debe tener como máximo %d caracteres", MaxNoteLength)
	}
	return n, nil
}

// RequireNote como NormalizeNote pero además exige texto no vacío.
func RequireNote(note, field string) (string, error) {
	n, err := NormalizeNote(note)
	if err != nil {
		return "", err
	}
	if n == "" {
		return "", domain.Validation("%s es obligatorio", field)
	}
	return n, nil
}
