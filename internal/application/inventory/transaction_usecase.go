package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

// Actor identidad que registra la transacción (la provee el colaborador de autenticación).
type Actor struct {
	ID   string
	Name string
}

// Reversal resultado de borrar una transacción.
type Reversal struct {
	ID       string
	Kind     entity.Kind
	Quantity int64           // cantidad devuelta o retirada del stock (0 en Expense)
	Amount   decimal.Decimal // monto revertido (solo Expense)
	MonthKey string          // mes original, el que se recalcula
	Stock    int64           // stock resultante tras la reversión
}

// txLog es el núcleo común de los cinco servicios: crear o borrar en el log,
// ajustar stock y recalcular el mes, todo en una sola unidad de trabajo.
type txLog struct {
	txRunner  ports.TxRunner
	repos     ports.Repos
	stock     *StockLedger
	summaries *analytics.SummaryAggregator
}

func newTxLog(txRunner ports.TxRunner, repos ports.Repos, stock *StockLedger, summaries *analytics.SummaryAggregator) txLog {
	return txLog{txRunner: txRunner, repos: repos, stock: stock, summaries: summaries}
}

// prepareFn completa campos del registro usando la transacción en curso (p. ej. precio activo).
type prepareFn func(ctx context.Context, tx ports.Repos, t *entity.Transaction) error

// register ajusta el stock (bloqueando la fila), persiste el registro y recalcula su mes.
// Cualquier error hace Rollback de todo.
func (l txLog) register(ctx context.Context, t *entity.Transaction, prepare prepareFn) (string, error) {
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now()
	}
	t.OccurredAt = t.OccurredAt.UTC()
	t.MonthKey = l.summaries.MonthOf(t.OccurredAt)

	err := l.txRunner.Run(ctx, func(tx ports.Repos) error {
		if prepare != nil {
			if err := prepare(ctx, tx, t); err != nil {
				return err
			}
		}
		if dir, ok := t.Kind.StockEffect(); ok {
			if _, err := l.stock.Adjust(ctx, tx, t.Quantity, dir); err != nil {
				return err
			}
		}
		if err := tx.Transactions.Create(ctx, t); err != nil {
			return err
		}
		_, err := l.summaries.RecomputeInTx(ctx, tx, t.MonthKey)
		return err
	})
	if err != nil {
		return "", err
	}
	return t.ID, nil
}

// remove borra el registro, revierte su efecto en el stock y recalcula su mes original.
// La reversión de una entrada que dejaría el stock negativo se rechaza con
// ErrReversalConflict y no se modifica nada.
func (l txLog) remove(ctx context.Context, kind entity.Kind, id string) (*Reversal, error) {
	if id == "" {
		return nil, domain.Validation("id requerido")
	}
	var out *Reversal
	err := l.txRunner.Run(ctx, func(tx ports.Repos) error {
		t, err := tx.Transactions.Delete(ctx, kind, id)
		if err != nil {
			return err
		}
		rev := &Reversal{ID: t.ID, Kind: t.Kind, Quantity: t.Quantity, Amount: t.Amount, MonthKey: t.MonthKey}
		if dir, ok := t.Kind.StockEffect(); ok {
			qty, err := l.stock.Adjust(ctx, tx, t.Quantity, dir.Inverse())
			if err != nil {
				if errors.Is(err, domain.ErrInsufficientStock) {
					return domain.ErrReversalConflict
				}
				return err
			}
			rev.Stock = qty
		} else {
			cur, err := tx.Stock.Get(ctx)
			if err != nil {
				return err
			}
			rev.Stock = cur.Quantity
		}
		if _, err := l.summaries.RecomputeInTx(ctx, tx, t.MonthKey); err != nil {
			return err
		}
		out = rev
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// list lista los registros de un mes; mes vacío significa el mes en curso.
func (l txLog) list(ctx context.Context, kind entity.Kind, monthKey string) ([]*entity.Transaction, error) {
	if monthKey == "" {
		monthKey = l.summaries.CurrentMonth()
	}
	if err := ledger.ValidateMonthKey(monthKey); err != nil {
		return nil, err
	}
	list, err := l.repos.Transactions.ListByMonth(ctx, kind, monthKey)
	if err != nil {
		return nil, err
	}
	if list == nil {
		list = []*entity.Transaction{}
	}
	return list, nil
}

func (l txLog) get(ctx context.Context, kind entity.Kind, id string) (*entity.Transaction, error) {
	if id == "" {
		return nil, domain.Validation("id requerido")
	}
	return l.repos.Transactions.GetByID(ctx, kind, id)
}
