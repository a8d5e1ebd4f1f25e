package dto

import "github.com/SscSPs/settlement_ledger/internal/core/domain"

// PostInvoiceResponse is returned after posting an invoice. Created is false when the invoice
// was already posted and the existing entry is returned.
type PostInvoiceResponse struct {
	Created bool                 `json:"created"`
	Entry   JournalEntryResponse `json:"entry"`
}

// PostPaymentResponse is returned after posting a payment.
type PostPaymentResponse struct {
	Created        bool                 `json:"created"`
	InvoicesClosed []string             `json:"invoicesClosed"`
	Entry          JournalEntryResponse `json:"entry"`
}

func ToPostPaymentResponse(r *domain.PaymentPostingResult) PostPaymentResponse {
	closed := r.InvoicesClosed
	if closed == nil {
		closed = []string{}
	}
	return PostPaymentResponse{
		Created:        r.Created,
		InvoicesClosed: closed,
		Entry:          ToJournalEntryResponse(r.Entry),
	}
}
