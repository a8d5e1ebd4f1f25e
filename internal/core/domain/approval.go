package domain

import "github.com/shopspring/decimal"

// DocumentType names the kind of source document being posted.
type DocumentType string

const (
	DocumentInvoice DocumentType = "INVOICE"
	DocumentPayment DocumentType = "PAYMENT"
)

// ApprovalRequest asks the approval workflow whether an amount may post.
type ApprovalRequest struct {
	DocumentType DocumentType
	DocumentID   string
	Number       string
	Amount       decimal.Decimal
	CurrencyCode string
	Actor        string
}
