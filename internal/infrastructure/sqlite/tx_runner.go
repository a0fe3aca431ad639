package sqlite

import (
	"context"
	"database/sql"

	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción SQLite (BEGIN IMMEDIATE).
type TxRunner struct {
	db *sql.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sql.DB) *TxRunner {
	return &TxRunner{db: db}
}

// NewRepos construye el conjunto de repositorios sobre db o tx.
func NewRepos(q Querier) ports.Repos {
	return ports.Repos{
		Transactions: NewTransactionRepository(q),
		Stock:        NewStockRepository(q),
		Prices:       NewPriceRepository(q),
		Summaries:    NewSummaryRepository(q),
	}
}

// Run inicia la transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx ports.Repos) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Storage("begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return domain.Storage("commit transaction", err)
	}
	return nil
}
