// Package storage selecciona el backend de persistencia según la configuración.
// Es el único lugar que conoce la identidad del backend.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ovos-api/internal/application/ports"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Ovos-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/Ovos-api/pkg/config"
	"github.com/jhoicas/Ovos-api/pkg/logger"
)

// Backend repositorios fuera de transacción + unidad de trabajo del backend elegido.
type Backend struct {
	Driver string
	Repos  ports.Repos
	Tx     ports.TxRunner
	close  func() error
}

// Close libera las conexiones.
func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// Open conecta el backend configurado y aplica el esquema.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Backend, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("postgres: %w", err)
		}
		log.Info().Str("driver", config.DriverPostgres).Str("host", cfg.DB.Host).Msg("backend de almacenamiento listo")
		return &Backend{
			Driver: config.DriverPostgres,
			Repos:  postgres.NewRepos(pool),
			Tx:     postgres.NewTxRunner(pool),
			close:  func() error { pool.Close(); return nil },
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: %w", err)
		}
		log.Info().Str("driver", config.DriverSQLite).Str("path", cfg.Storage.SQLitePath).Msg("backend de almacenamiento listo")
		return &Backend{
			Driver: config.DriverSQLite,
			Repos:  sqlite.NewRepos(db),
			Tx:     sqlite.NewTxRunner(db),
			close:  db.Close,
		}, nil
	}
	return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
}
