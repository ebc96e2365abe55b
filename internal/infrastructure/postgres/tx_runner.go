package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Negocio-api/internal/domain/repository"
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool  *pgxpool.Pool
	specs []repository.TableSpec
}

// NewTxRunner construye el runner con el pool y las tablas que verá el RemoteStore transaccional.
func NewTxRunner(pool *pgxpool.Pool, specs []repository.TableSpec) *TxRunner {
	return &TxRunner{pool: pool, specs: specs}
}

// Run inicia una transacción, ejecuta fn con un RemoteStore atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(remote repository.RemoteStore) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRemoteStore(tx, r.specs)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
