package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

// Decimales como TEXT (representación exacta de shopspring/decimal); las sumas se hacen en Go.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_transactions (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL CHECK (kind IN ('ENTRY','SALE','LOSS','CONSUMPTION','EXPENSE')),
	quantity      INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	amount        TEXT NOT NULL DEFAULT '0',
	unit_price    TEXT NOT NULL DEFAULT '0',
	total_value   TEXT NOT NULL DEFAULT '0',
	occurred_at   TEXT NOT NULL,
	month_key     TEXT NOT NULL,
	note          TEXT NOT NULL DEFAULT '',
	actor_id      TEXT,
	actor_name    TEXT NOT NULL DEFAULT '',
	customer_id   TEXT,
	customer_name TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_ledger_transactions_kind_month
	ON ledger_transactions (kind, month_key, occurred_at DESC);

CREATE TABLE IF NOT EXISTS stock_level (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	quantity   INTEGER NOT NULL CHECK (quantity >= 0),
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS price_records (
	id             TEXT PRIMARY KEY,
	unit_price     TEXT NOT NULL,
	effective_from TEXT NOT NULL,
	active         INTEGER NOT NULL DEFAULT 0
);
CREATE UNIQUE INDEX IF NOT EXISTS uq_price_records_single_active
	ON price_records (active) WHERE active = 1;

CREATE TABLE IF NOT EXISTS monthly_summaries (
	month_key         TEXT PRIMARY KEY,
	total_entries     INTEGER NOT NULL DEFAULT 0,
	total_sales_qty   INTEGER NOT NULL DEFAULT 0,
	total_losses      INTEGER NOT NULL DEFAULT 0,
	total_consumption INTEGER NOT NULL DEFAULT 0,
	revenue           TEXT NOT NULL DEFAULT '0',
	total_expenses    TEXT NOT NULL DEFAULT '0',
	net_profit        TEXT NOT NULL DEFAULT '0'
);`

// Migrate aplica el esquema (idempotente).
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
