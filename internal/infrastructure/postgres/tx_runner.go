package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/velia-co/crm-api/internal/application/billing"
	"github.com/velia-co/crm-api/internal/application/crm"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

var _ crm.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunDeals inicia una transacción, ejecuta fn con un DealRepository atado a
// la tx y hace Commit o Rollback. Renumerar las dos columnas de un
// movimiento kanban debe ser atómico.
func (r *TxRunner) RunDeals(ctx context.Context, fn func(dealRepo repository.DealRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDealRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunDocuments inicia una transacción con un DocumentRepository atado a la
// tx: reservar el consecutivo y persistir cabecera + líneas es atómico.
func (r *TxRunner) RunDocuments(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewDocumentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
