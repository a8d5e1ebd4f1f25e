package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxTxManager runs a unit of work in one database transaction.
type PgxTxManager struct {
	BaseRepository
}

func newPgxTxManager(pool *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionManager = (*PgxTxManager)(nil)

// WithinTx binds fresh repositories to a transaction, commits when fn succeeds and rolls back
// otherwise.
func (m *PgxTxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.TxRepositories) error) error {
	tx, err := m.Begin(ctx)
	if err != nil {
		return err
	}
	defer m.Rollback(ctx, tx) // no-op once committed

	base := m.inTx(tx)
	repos := portsrepo.TxRepositories{
		Journals: &PgxJournalRepository{BaseRepository: base},
		Invoices: &PgxInvoiceRepository{BaseRepository: base},
		Payments: &PgxPaymentRepository{BaseRepository: base},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return m.Commit(ctx, tx)
}
