package repositories

import (
	"context"
)

// TxRepositories are the repositories bound to one unit of work.
type TxRepositories struct {
	Journals JournalRepositoryFacade
	Invoices InvoiceRepositoryFacade
	Payments PaymentRepositoryFacade
}

// TransactionManager runs posting work atomically.
type TransactionManager interface {
	// WithinTx runs fn in a single unit of work. A non-nil error from fn rolls back everything
	// written through tx; otherwise the work is committed.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx TxRepositories) error) error
}
