package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of the invoices table.
type Invoice struct {
	InvoiceID     string          `db:"invoice_id"`
	Number        string          `db:"number"`
	Kind          string          `db:"kind"`
	PartyID       string          `db:"party_id"`
	CurrencyCode  string          `db:"currency_code"`
	InvoiceDate   time.Time       `db:"invoice_date"`
	DueDate       time.Time       `db:"due_date"`
	PeriodID      *string         `db:"period_id"`
	Status        string          `db:"status"`
	PaymentStatus string          `db:"payment_status"`
	Subtotal      decimal.Decimal `db:"subtotal"`
	TaxTotal      decimal.Decimal `db:"tax_total"`
	Total         decimal.Decimal `db:"total"`
	ExchangeRate  decimal.Decimal `db:"exchange_rate"`
	BaseTotal     decimal.Decimal `db:"base_total"`
	GLJournalID   *string         `db:"gl_journal_id"`
	PostedAt      *time.Time      `db:"posted_at"`
	PaidAt        *time.Time      `db:"paid_at"`
	AuditFields
}

// InvoiceLine is a row of invoice_lines.
type InvoiceLine struct {
	LineID       string          `db:"line_id"`
	InvoiceID    string          `db:"invoice_id"`
	LineNo       int             `db:"line_no"`
	Description  string          `db:"description"`
	Quantity     decimal.Decimal `db:"quantity"`
	UnitPrice    decimal.Decimal `db:"unit_price"`
	TaxRate      decimal.Decimal `db:"tax_rate"`
	TaxCode      string          `db:"tax_code"`
	AccountCode  string          `db:"account_code"`
	LineSubtotal decimal.Decimal `db:"line_subtotal"`
	LineTax      decimal.Decimal `db:"line_tax"`
}

// Settlement is the per-invoice sum of posted allocations.
type Settlement struct {
	InvoiceID string          `db:"invoice_id"`
	Settled   decimal.Decimal `db:"settled"`
	Carrying  decimal.Decimal `db:"carrying"`
}
