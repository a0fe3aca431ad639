package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ovos-api/internal/domain"
	"github.com/jhoicas/Ovos-api/internal/domain/entity"
	"github.com/jhoicas/Ovos-api/internal/domain/ledger"
	"github.com/jhoicas/Ovos-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

const transactionColumns = `id, kind, quantity, amount, unit_price, total_value, occurred_at,
	month_key, note, actor_id, actor_name, customer_id, customer_name`

// Create inserta la transacción. Asigna ID, OccurredAt y MonthKey si vienen vacíos;
// los servicios ya traen MonthKey calculado en la zona de la operación.
func (r *TransactionRepo) Create(ctx context.Context, t *entity.Transaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.OccurredAt.IsZero() {
		t.OccurredAt = time.Now().UTC()
	}
	t.OccurredAt = t.OccurredAt.UTC()
	if t.MonthKey == "" {
		t.MonthKey = ledger.MonthKey(t.OccurredAt, time.Local)
	}

	query := `INSERT INTO ledger_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		t.ID, string(t.Kind), t.Quantity, t.Amount, t.UnitPrice, t.TotalValue, t.OccurredAt,
		t.MonthKey, t.Note, nullable(t.ActorID), t.ActorName, nullable(t.CustomerID), t.CustomerName,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Storage("create transaction: id duplicado", err)
		}
		return domain.Storage("create transaction", err)
	}
	return nil
}

// GetByID obtiene una transacción del tipo indicado.
func (r *TransactionRepo) GetByID(ctx context.Context, kind entity.Kind, id string) (*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions WHERE kind = $1 AND id = $2`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, string(kind), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Storage("get transaction", err)
	}
	return t, nil
}

// ListByMonth lista las transacciones del tipo en el mes, más recientes primero.
func (r *TransactionRepo) ListByMonth(ctx context.Context, kind entity.Kind, monthKey string) ([]*entity.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM ledger_transactions
		WHERE kind = $1 AND month_key = $2
		ORDER BY occurred_at DESC, seq DESC`
	rows, err := r.q.Query(ctx, query, string(kind), monthKey)
	if err != nil {
		return nil, domain.Storage("list transactions", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, domain.Storage("scan transaction", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list transactions", err)
	}
	return list, nil
}

// Delete borra físicamente y devuelve la fila eliminada.
func (r *TransactionRepo) Delete(ctx context.Context, kind entity.Kind, id string) (*entity.Transaction, error) {
	query := `DELETE FROM ledger_transactions WHERE kind = $1 AND id = $2 RETURNING ` + transactionColumns
	t, err := scanTransaction(r.q.QueryRow(ctx, query, string(kind), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.Storage("delete transaction", err)
	}
	return t, nil
}

// Months lista los meses con al menos una transacción, descendente.
func (r *TransactionRepo) Months(ctx context.Context) ([]string, error) {
	const query = `SELECT DISTINCT month_key FROM ledger_transactions ORDER BY month_key DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, domain.Storage("list months", err)
	}
	defer rows.Close()

	var months []string
	for rows.Next() {
		var m string
		if err := rows.Scan(&m); err != nil {
			return nil, domain.Storage("scan month", err)
		}
		months = append(months, m)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Storage("list months", err)
	}
	return months, nil
}

func scanTransaction(row pgxScanner) (*entity.Transaction, error) {
	var t entity.Transaction
	var kind string
	var actorID, customerID *string
	err := row.Scan(
		&t.ID, &kind, &t.Quantity, &t.Amount, &t.UnitPrice, &t.TotalValue, &t.OccurredAt,
		&t.MonthKey, &t.Note, &actorID, &t.ActorName, &customerID, &t.CustomerName,
	)
	if err != nil {
		return nil, err
	}
	t.Kind = entity.Kind(kind)
	t.OccurredAt = t.OccurredAt.UTC()
	t.ActorID = deref(actorID)
	t.CustomerID = deref(customerID)
	return &t, nil
}
