package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentDirection distinguishes cash received from customers and cash paid to suppliers.
type PaymentDirection string

const (
	Receipt      PaymentDirection = "RECEIPT"
	Disbursement PaymentDirection = "DISBURSEMENT"
)

// InvoiceKind returns the kind of invoice a payment in this direction may settle.
func (d PaymentDirection) InvoiceKind() InvoiceKind {
	if d == Disbursement {
		return InvoiceAP
	}
	return InvoiceAR
}

// Payment is a cash receipt or disbursement with its allocations.
type Payment struct {
	PaymentID       string              `json:"paymentID"`
	Number          string              `json:"number"`
	Direction       PaymentDirection    `json:"direction"`
	PartyID         string              `json:"partyID"`
	CurrencyCode    string              `json:"currencyCode"`
	PaymentDate     time.Time           `json:"paymentDate"`
	TotalAmount     decimal.Decimal     `json:"totalAmount"`
	BankAccountCode string              `json:"bankAccountCode,omitempty"` // empty means the BANK role
	PeriodID        *string             `json:"periodID,omitempty"`
	GLJournalID     *string             `json:"glJournalID,omitempty"`
	PostedAt        *time.Time          `json:"postedAt,omitempty"`
	Allocations     []PaymentAllocation `json:"allocations"`
	AuditFields
}

// IsPosted reports whether the payment is linked to a journal entry.
func (p Payment) IsPosted() bool {
	return p.GLJournalID != nil
}

// AllocatedTotal sums allocation amounts in the payment currency.
func (p Payment) AllocatedTotal() decimal.Decimal {
	total := decimal.Zero
	for _, a := range p.Allocations {
		total = total.Add(a.Amount)
	}
	return total
}

// PaymentAllocation assigns part of a payment to one invoice. Once ExchangeRate is recorded the
// snapshot fields never change.
type PaymentAllocation struct {
	AllocationID    string          `json:"allocationID"`
	PaymentID       string          `json:"paymentID"`
	InvoiceID       string          `json:"invoiceID"`
	Amount          decimal.Decimal `json:"amount"`          // payment currency
	InvoiceCurrency string          `json:"invoiceCurrency"` // snapshot
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`    // invoice currency -> payment currency
	SettledAmount   decimal.Decimal `json:"settledAmount"`   // invoice currency
	BaseAmount      decimal.Decimal `json:"baseAmount"`      // collected/paid, base currency
	CarryingAmount  decimal.Decimal `json:"carryingAmount"`  // recognized, base currency
	FxDifference    decimal.Decimal `json:"fxDifference"`    // BaseAmount - CarryingAmount
}

// HasRateSnapshot reports whether the allocation already recorded its rate.
func (a PaymentAllocation) HasRateSnapshot() bool {
	return a.ExchangeRate.IsPositive()
}

// Settlement is the settled amount and relieved carrying amount accumulated on one invoice by
// posted payments.
type Settlement struct {
	Settled  decimal.Decimal
	Carrying decimal.Decimal
}

// PaymentPostingResult is returned by the payment poster.
type PaymentPostingResult struct {
	Entry          *JournalEntry `json:"entry"`
	Created        bool          `json:"created"`
	InvoicesClosed []string      `json:"invoicesClosed"` // numbers of invoices that reached PAID
}
