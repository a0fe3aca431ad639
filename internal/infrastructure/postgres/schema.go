package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema DDL idempotente del núcleo. stock_level es una fila única (id = 1) y el índice
// parcial de price_records impide más de un precio activo a nivel de almacenamiento.
// seq da el orden de inserción para desempatar timestamps iguales.
const schema = `
CREATE TABLE IF NOT EXISTS ledger_transactions (
	seq           BIGSERIAL NOT NULL UNIQUE,
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL CHECK (kind IN ('ENTRY','SALE','LOSS','CONSUMPTION','EXPENSE')),
	quantity      BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
	amount        NUMERIC NOT NULL DEFAULT 0 CHECK (amount >= 0),
	unit_price    NUMERIC NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
	total_value   NUMERIC NOT NULL DEFAULT 0 CHECK (total_value >= 0),
	occurred_at   TIMESTAMPTZ NOT NULL,
	month_key     CHAR(7) NOT NULL,
	note          TEXT NOT NULL DEFAULT '',
	actor_id      TEXT,
	actor_name    TEXT NOT NULL DEFAULT '',
	customer_id   TEXT,
	customer_name TEXT NOT NULL DEFAULT '',
	CHECK ((kind = 'EXPENSE' AND amount > 0) OR (kind <> 'EXPENSE' AND quantity > 0))
);
ALTER TABLE ledger_transactions ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
CREATE INDEX IF NOT EXISTS idx_ledger_transactions_kind_month
	ON ledger_transactions (kind, month_key, occurred_at DESC, seq DESC);

CREATE TABLE IF NOT EXISTS stock_level (
	id         SMALLINT PRIMARY KEY CHECK (id = 1),
	quantity   BIGINT NOT NULL CHECK (quantity >= 0),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS price_records (
	seq            BIGSERIAL NOT NULL UNIQUE,
	id             TEXT PRIMARY KEY,
	unit_price     NUMERIC NOT NULL CHECK (unit_price >= 0),
	effective_from TIMESTAMPTZ NOT NULL,
	active         BOOLEAN NOT NULL DEFAULT false
);
ALTER TABLE price_records ADD COLUMN IF NOT EXISTS seq BIGSERIAL;
CREATE UNIQUE INDEX IF NOT EXISTS uq_price_records_single_active
	ON price_records (active) WHERE active;

CREATE TABLE IF NOT EXISTS monthly_summaries (
	month_key         CHAR(7) PRIMARY KEY,
	total_entries     BIGINT NOT NULL DEFAULT 0,
	total_sales_qty   BIGINT NOT NULL DEFAULT 0,
	total_losses      BIGINT NOT NULL DEFAULT 0,
	total_consumption BIGINT NOT NULL DEFAULT 0,
	revenue           NUMERIC NOT NULL DEFAULT 0,
	total_expenses    NUMERIC NOT NULL DEFAULT 0,
	net_profit        NUMERIC NOT NULL DEFAULT 0
);`

// Migrate aplica el esquema (idempotente).
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("aplicar esquema: %w", err)
	}
	return nil
}
