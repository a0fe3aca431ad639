package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ovos-api/internal/application/inventory"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
)

// MovementRequest body para POST de entradas, pérdidas y consumo.
type MovementRequest struct {
	Quantity int64  `json:"quantity"`
	Note     string `json:"note,omitempty"`
}

// SaleRequest body para POST /api/sales. Si viene total_value tiene prioridad sobre unit_price;
// sin ninguno se usa el precio activo.
type SaleRequest struct {
	Quantity     int64            `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	Note         string           `json:"note,omitempty"`
	CustomerID   string           `json:"customer_id,omitempty"`
	CustomerName string           `json:"customer_name,omitempty"`
}

// ExpenseRequest body para POST /api/expenses.
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// TransactionResponse una transacción del libro.
type TransactionResponse struct {
	ID           string           `json:"id"`
	Kind         string           `json:"kind"`
	Quantity     int64            `json:"quantity,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	TotalValue   *decimal.Decimal `json:"total_value,omitempty"`
	OccurredAt   time.Time        `json:"timestamp"`
	MonthKey     string           `json:"month_key"`
	Note         string           `json:"note,omitempty"`
	ActorID      string           `json:"actor_id,omitempty"`
	ActorName    string           `json:"actor_name,omitempty"`
	CustomerID   string           `json:"customer_id,omitempty"`
	CustomerName string           `json:"customer_name,omitempty"`
}

// TransactionListResponse listado mensual de un tipo.
type TransactionListResponse struct {
	MonthKey string                 `json:"month_key"`
	Total    int                    `json:"total"`
	Items    []*TransactionResponse `json:"items"`
}

// ReversalResponse resultado de un DELETE.
type ReversalResponse struct {
	ID       string           `json:"id"`
	Kind     string           `json:"kind"`
	Quantity int64            `json:"reversed_quantity,omitempty"`
	Amount   *decimal.Decimal `json:"reversed_amount,omitempty"`
	MonthKey string           `json:"month_key"`
	Stock    int64            `json:"stock"`
}

// ToTransactionResponse mapea la entidad; los campos monetarios solo se exponen en los tipos que los usan.
func ToTransactionResponse(t *entity.Transaction) *TransactionResponse {
	out := &TransactionResponse{
		ID:           t.ID,
		Kind:         string(t.Kind),
		Quantity:     t.Quantity,
		OccurredAt:   t.OccurredAt,
		MonthKey:     t.MonthKey,
		Note:         t.Note,
		ActorID:      t.ActorID,
		ActorName:    t.ActorName,
		CustomerID:   t.CustomerID,
		CustomerName: t.CustomerName,
	}
	switch t.Kind {
	case entity.KindSale:
		unit, total := t.UnitPrice, t.TotalValue
		out.UnitPrice = &unit
		out.TotalValue = &total
	case entity.KindExpense:
		amount := t.Amount
		out.Amount = &amount
	}
	return out
}

// ToTransactionList mapea un listado mensual.
func ToTransactionList(monthKey string, list []*entity.Transaction) *TransactionListResponse {
	items := make([]*TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, ToTransactionResponse(t))
	}
	return &TransactionListResponse{MonthKey: monthKey, Total: len(items), Items: items}
}

// ToReversalResponse mapea el resultado de un borrado.
func ToReversalResponse(r *inventory.Reversal) *ReversalResponse {
	out := &ReversalResponse{
		ID:       r.ID,
		Kind:     string(r.Kind),
		Quantity: r.Quantity,
		MonthKey: r.MonthKey,
		Stock:    r.Stock,
	}
	if r.Kind == entity.KindExpense {
		amount := r.Amount
		out.Amount = &amount
	}
	return out
}
