package ports

import (
	"context"

	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

// Repos agrupa los repositorios del núcleo. Fuera de una transacción están atados
// al pool; dentro de TxRunner.Run, a la transacción en curso.
type Repos struct {
	Transactions repository.TransactionRepository
	Stock        repository.StockRepository
	Prices       repository.PriceRepository
	Summaries    repository.SummaryRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD con repositorios atados a ella.
// Commit si fn devuelve nil; Rollback en cualquier otro caso. Es la unidad de trabajo
// de toda operación que escribe (crear/borrar + ajuste de stock + recálculo del resumen).
type TxRunner interface {
	Run(ctx context.Context, fn func(tx Repos) error) error
}
