package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/benyoung8291/fieldflow-core-sub002/internal/application/documents"
	"github.com/benyoung8291/fieldflow-core-sub002/internal/domain/repository"
)

// Ensure TxRunner implements documents.TxRunner.
var _ documents.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner with the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run begins a transaction, executes fn with a document repository bound to
// the tx, and commits or rolls back.
func (r *TxRunner) Run(ctx context.Context, fn func(docRepo repository.DocumentRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	docRepo := NewDocumentRepository(tx)

	if err := fn(docRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
