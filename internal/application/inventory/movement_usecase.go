package inventory

import (
	"context"

	"github.com/jhoicas/Ovos-api/internal/application/analytics"
	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
)

// MovementInput entrada para registrar Entry, Loss o Consumption.
type MovementInput struct {
	Quantity int64
	Note     string
	Actor    Actor
}

// MovementUseCase servicio de los tipos que solo mueven cantidad: entradas (suman stock),
// pérdidas y consumo personal (restan stock y exigen stock disponible).
type MovementUseCase struct {
	log  txLog
	kind entity.Kind
}

// NewEntryUseCase servicio de entradas.
func NewEntryUseCase(txRunner ports.TxRunner, repos ports.Repos, stock *StockLedger, summaries *analytics.SummaryAggregator) *MovementUseCase {
	return &MovementUseCase{log: newTxLog(txRunner, repos, stock, summaries), kind: entity.KindEntry}
}

// NewLossUseCase servicio de ovos quebrados.
func NewLossUseCase(txRunner ports.TxRunner, repos ports.Repos, stock *StockLedger, summaries *analytics.SummaryAggregator) *MovementUseCase {
	return &MovementUseCase{log: newTxLog(txRunner, repos, stock, summaries), kind: entity.KindLoss}
}

// NewConsumptionUseCase servicio de consumo personal.
func NewConsumptionUseCase(txRunner ports.TxRunner, repos ports.Repos, stock *StockLedger, summaries *analytics.SummaryAggregator) *MovementUseCase {
	return &MovementUseCase{log: newTxLog(txRunner, repos, stock, summaries), kind: entity.KindConsumption}
}

// Kind tipo de transacción que maneja el servicio.
func (uc *MovementUseCase) Kind() entity.Kind { return uc.kind }

// Register valida y registra el movimiento. Devuelve el ID creado.
func (uc *MovementUseCase) Register(ctx context.Context, in MovementInput) (string, error) {
	if err := ledger.ValidateQuantity(in.Quantity); err != nil {
		return "", err
	}
	note, err := ledger.NormalizeNote(in.Note)
	if err != nil {
		return "", err
	}
	t := &entity.Transaction{
		Kind:      uc.kind,
		Quantity:  in.Quantity,
		Note:      note,
		ActorID:   in.Actor.ID,
		ActorName: in.Actor.Name,
	}
	return uc.log.register(ctx, t, nil)
}

// Remove borra el movimiento y revierte su efecto en el stock.
func (uc *MovementUseCase) Remove(ctx context.Context, id string) (*Reversal, error) {
	return uc.log.remove(ctx, uc.kind, id)
}

// List lista los movimientos del mes (vacío = mes actual), más recientes primero.
func (uc *MovementUseCase) List(ctx context.Context, monthKey string) ([]*entity.Transaction, error) {
	return uc.log.list(ctx, uc.kind, monthKey)
}

// CurrentMonth mes que lista List cuando no se indica uno.
func (uc *MovementUseCase) CurrentMonth() string { return uc.log.summaries.CurrentMonth() }

// Get obtiene un movimiento por ID.
func (uc *MovementUseCase) Get(ctx context.Context, id string) (*entity.Transaction, error) {
	return uc.log.get(ctx, uc.kind, id)
}
