package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

// ExpenseInput entrada para registrar un gasto.
type ExpenseInput struct {
	Amount      decimal.Decimal
	Description string
	Actor       Actor
}

// ExpenseUseCase registra gastos monetarios; no afectan el stock.
type ExpenseUseCase struct {
	log txLog
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(txRunner ports.TxRunner, repos ports.Repos, stock *StockLedger, summaries *analytics.SummaryAggregator) *ExpenseUseCase {
	return &ExpenseUseCase{log: newTxLog(txRunner, repos, stock, summaries)}
}

// Register exige monto positivo y descripción no vacía (máx. 500 caracteres).
func (uc *ExpenseUseCase) Register(ctx context.Context, in ExpenseInput) (string, error) {
	if err := ledger.ValidateAmount(in.Amount); err != nil {
		return "", err
	}
	desc, err := ledger.RequireNote(in.Description, "la descripción del gasto")
	if err != nil {
		return "", err
	}
	t := &entity.Transaction{
		Kind:      entity.KindExpense,
		Amount:    in.Amount,
		Note:      desc,
		ActorID:   in.Actor.ID,
		ActorName: in.Actor.Name,
	}
	return uc.log.register(ctx, t, nil)
}

// Remove borra el gasto; Reversal.Amount lleva el monto eliminado.
func (uc *ExpenseUseCase) Remove(ctx context.Context, id string) (*Reversal, error) {
	return uc.log.remove(ctx, entity.KindExpense, id)
}

// List lista los gastos del mes (vacío = mes actual).
func (uc *ExpenseUseCase) List(ctx context.Context, monthKey string) ([]*entity.Transaction, error) {
	return uc.log.list(ctx, entity.KindExpense, monthKey)
}

// CurrentMonth mes que lista List cuando no se indica uno.
func (uc *ExpenseUseCase) CurrentMonth() string { return uc.log.summaries.CurrentMonth() }

// Get obtiene un gasto por ID.
func (uc *ExpenseUseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	return uc.log.get(ctx, entity.KindExpense, id)
}
