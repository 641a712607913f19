package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kwisniewski/warsztat-api/internal/application/orders"
	"github.com/kwisniewski/warsztat-api/internal/domain/repository"
)

var _ orders.TxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside one PostgreSQL transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner on the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInTx begins a transaction, runs fn with an order repository bound to it
// and commits, rolling back on any error. The order save path (replace header,
// wipe lines, reinsert) depends on this being atomic.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(repo repository.OrderRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewOrderRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
