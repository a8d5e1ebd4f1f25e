package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RowStatus marks whether a report row could be computed in full.
type RowStatus string

const (
	RowOK          RowStatus = "ok"
	RowUnavailable RowStatus = "unavailable"
)

// AccountActivity is the raw per-account debit/credit sum read from posted lines.
type AccountActivity struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// TrialBalanceRow is one account's activity in the requested range.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Net         decimal.Decimal `json:"net"` // signed by the account type's natural side
	Status      RowStatus       `json:"status"`
}

// TrialBalance holds rows in account-code order and their column totals.
type TrialBalance struct {
	DateFrom     time.Time         `json:"dateFrom"`
	DateTo       time.Time         `json:"dateTo"`
	CurrencyCode string            `json:"currencyCode"`
	Rows         []TrialBalanceRow `json:"rows"`
	TotalDebit   decimal.Decimal   `json:"totalDebit"`
	TotalCredit  decimal.Decimal   `json:"totalCredit"`
}

// BucketCurrent is the label for invoices not yet overdue.
const BucketCurrent = "Current"

// AgingRow is one open invoice classified into an aging bucket.
type AgingRow struct {
	InvoiceID         string           `json:"invoiceID"`
	InvoiceNumber     string           `json:"invoiceNumber"`
	PartyID           string           `json:"partyID"`
	InvoiceDate       time.Time        `json:"invoiceDate"`
	DueDate           time.Time        `json:"dueDate"`
	DaysOverdue       int              `json:"daysOverdue"`
	Bucket            string           `json:"bucket"`
	CurrencyCode      string           `json:"currencyCode"`
	Total             decimal.Decimal  `json:"total"`
	PaidAmount        decimal.Decimal  `json:"paidAmount"`
	Balance           decimal.Decimal  `json:"balance"`
	ReportingCurrency string           `json:"reportingCurrency"`
	ReportingBalance  *decimal.Decimal `json:"reportingBalance"` // nil when no rate is available
	Status            RowStatus        `json:"status"`
}

// AgingBucketSummary totals the reporting balances of one bucket.
type AgingBucketSummary struct {
	Label  string          `json:"label"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// AgingReport is the flat row list plus bucket and grand-total summaries.
type AgingReport struct {
	Kind              InvoiceKind          `json:"kind"`
	AsOf              time.Time            `json:"asOf"`
	ReportingCurrency string               `json:"reportingCurrency"`
	Rows              []AgingRow           `json:"rows"`
	Buckets           []AgingBucketSummary `json:"buckets"`
	GrandTotal        decimal.Decimal      `json:"grandTotal"`
	UnavailableCount  int                  `json:"unavailableCount"`
}
