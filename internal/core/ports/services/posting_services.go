package services

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// InvoicePosterSvc posts AR/AP invoices to the general ledger.
type InvoicePosterSvc interface {
	// PostInvoiceToGL returns the invoice's entry and whether this call created it.
	PostInvoiceToGL(ctx context.Context, invoiceID string, actor string) (*domain.JournalEntry, bool, error)
}

// PaymentPosterSvc posts receipts and disbursements, including realized FX.
type PaymentPosterSvc interface {
	PostPaymentToGL(ctx context.Context, paymentID string, actor string) (*domain.PaymentPostingResult, error)
}

// PostingApprover is the approval workflow's answer to "may this amount post".
type PostingApprover interface {
	MayPost(ctx context.Context, req domain.ApprovalRequest) (bool, error)
}
