package domain

import (
	"errors"
	"fmt"
)

// Categorías de error del núcleo (sin dependencias externas).
// Toda falla que sale del núcleo cumple errors.Is con exactamente una de ellas.
var (
	ErrValidation = errors.New("entrada inválida")
	ErrNotFound   = errors.New("recurso no encontrado")
	ErrConflict   = errors.New("conflicto con el estado actual")
	ErrStorage    = errors.New("falla de persistencia")
)

// Conflictos específicos; todos son errors.Is(err, ErrConflict).
var (
	ErrInsufficientStock = fmt.Errorf("%w: stock insuficiente", ErrConflict)
	ErrNoActivePrice     = fmt.Errorf("%w: no hay precio activo definido", ErrConflict)
	ErrReversalConflict  = fmt.Errorf("%w: revertir la entrada dejaría el stock negativo", ErrConflict)
)

// StorageError envuelve un error del driver (pgx, sqlite) con la operación que falló.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrStorage) sin perder el error original del driver.
func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Storage construye un StorageError; devuelve nil si err es nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// Validation construye un error de validación con detalle.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
