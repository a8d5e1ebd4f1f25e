package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind tells receivable invoices from payable ones. Both are structurally identical.
type InvoiceKind string

const (
	InvoiceAR InvoiceKind = "AR"
	InvoiceAP InvoiceKind = "AP"
)

// InvoiceStatus is the document lifecycle. Payment progress is tracked separately.
type InvoiceStatus string

const (
	InvoiceDraft     InvoiceStatus = "DRAFT"
	InvoicePosted    InvoiceStatus = "POSTED"
	InvoiceCancelled InvoiceStatus = "CANCELLED"
)

// PaymentStatus is derived from the invoice total and its allocations.
type PaymentStatus string

const (
	Unpaid        PaymentStatus = "UNPAID"
	PartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	Paid          PaymentStatus = "PAID"
)

// Invoice is an AR or AP source document. Totals are frozen when the invoice is posted.
type Invoice struct {
	InvoiceID     string          `json:"invoiceID"`
	Number        string          `json:"number"`
	Kind          InvoiceKind     `json:"kind"`
	PartyID       string          `json:"partyID"`
	CurrencyCode  string          `json:"currencyCode"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	DueDate       time.Time       `json:"dueDate"`
	PeriodID      *string         `json:"periodID,omitempty"`
	Status        InvoiceStatus   `json:"status"`
	PaymentStatus PaymentStatus   `json:"paymentStatus"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxTotal      decimal.Decimal `json:"taxTotal"`
	Total         decimal.Decimal `json:"total"`
	ExchangeRate  decimal.Decimal `json:"exchangeRate"` // invoice currency -> base, at posting
	BaseTotal     decimal.Decimal `json:"baseTotal"`    // amount recognized in the control account
	GLJournalID   *string         `json:"glJournalID,omitempty"`
	PostedAt      *time.Time      `json:"postedAt,omitempty"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	Lines         []InvoiceLine   `json:"lines"`
	AuditFields
}

// IsPosted reports whether the invoice is linked to a journal entry.
func (i Invoice) IsPosted() bool {
	return i.GLJournalID != nil
}

// InvoiceLine is a priced, taxed line item.
type InvoiceLine struct {
	LineID       string          `json:"lineID"`
	Description  string          `json:"description"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	TaxRate      decimal.Decimal `json:"taxRate"`               // percent, 5 means 5%
	TaxCode      string          `json:"taxCode"`               // e.g. VAT5, resolves a tax account
	AccountCode  string          `json:"accountCode,omitempty"` // revenue/expense override
	LineSubtotal decimal.Decimal `json:"lineSubtotal"`
	LineTax      decimal.Decimal `json:"lineTax"`
}
