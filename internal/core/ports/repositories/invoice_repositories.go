package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// InvoiceReader defines read operations for AR/AP invoices.
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice with its lines.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListOpenInvoices returns posted, non-cancelled invoices of the given kind that are not
	// PAID and are dated on or before asOf.
	ListOpenInvoices(ctx context.Context, kind domain.InvoiceKind, asOf time.Time) ([]domain.Invoice, error)

	// FindSettlements sums settled and carrying amounts of allocations belonging to posted
	// payments, keyed by invoice ID. Invoices without allocations are absent.
	FindSettlements(ctx context.Context, invoiceIDs []string) (map[string]domain.Settlement, error)
}

// InvoiceLocker reads an invoice while holding a row lock until the unit of work ends.
type InvoiceLocker interface {
	FindInvoiceByIDForUpdate(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceWriter defines the fields the ledger is allowed to write on an invoice.
type InvoiceWriter interface {
	// MarkInvoicePosted freezes totals and line amounts and stores the journal link, rate,
	// base total and posted_at. It returns apperrors.ErrAlreadyPosted when a link exists.
	MarkInvoicePosted(ctx context.Context, invoice domain.Invoice, actor string) error

	// ClearInvoicePosting removes the journal link after the entry has been reversed.
	ClearInvoicePosting(ctx context.Context, invoiceID, actor string, at time.Time) error

	// UpdateInvoicePaymentStatus stores a recomputed payment status.
	UpdateInvoicePaymentStatus(ctx context.Context, invoiceID string, status domain.PaymentStatus, paidAt *time.Time, actor string, at time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces.
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceLocker
	InvoiceWriter
}
