package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// PaymentReader defines read operations for payments.
type PaymentReader interface {
	// FindPaymentByID retrieves a payment with its allocations.
	FindPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error)
}

// PaymentLocker reads a payment while holding a row lock until the unit of work ends.
type PaymentLocker interface {
	FindPaymentByIDForUpdate(ctx context.Context, paymentID string) (*domain.Payment, error)
}

// PaymentWriter defines the fields the ledger is allowed to write on a payment.
type PaymentWriter interface {
	// SaveAllocationSnapshots stores rate and amount snapshots of the given allocations.
	SaveAllocationSnapshots(ctx context.Context, allocations []domain.PaymentAllocation) error

	// MarkPaymentPosted stores the journal link. It returns apperrors.ErrAlreadyPosted when a
	// link exists.
	MarkPaymentPosted(ctx context.Context, paymentID, journalID, actor string, at time.Time) error

	// ClearPaymentPosting removes the journal link after the entry has been reversed.
	ClearPaymentPosting(ctx context.Context, paymentID, actor string, at time.Time) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces.
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentLocker
	PaymentWriter
}
