package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment is a row of the payments table.
type Payment struct {
	PaymentID       string          `db:"payment_id"`
	Number          string          `db:"number"`
	Direction       string          `db:"direction"`
	PartyID         string          `db:"party_id"`
	CurrencyCode    string          `db:"currency_code"`
	PaymentDate     time.Time       `db:"payment_date"`
	TotalAmount     decimal.Decimal `db:"total_amount"`
	BankAccountCode string          `db:"bank_account_code"`
	PeriodID        *string         `db:"period_id"`
	GLJournalID     *string         `db:"gl_journal_id"`
	PostedAt        *time.Time      `db:"posted_at"`
	AuditFields
}

// PaymentAllocation is a row of payment_allocations. A zero exchange rate means no snapshot yet.
type PaymentAllocation struct {
	AllocationID    string          `db:"allocation_id"`
	PaymentID       string          `db:"payment_id"`
	InvoiceID       string          `db:"invoice_id"`
	Amount          decimal.Decimal `db:"amount"`
	InvoiceCurrency string          `db:"invoice_currency"`
	ExchangeRate    decimal.Decimal `db:"exchange_rate"`
	SettledAmount   decimal.Decimal `db:"settled_amount"`
	BaseAmount      decimal.Decimal `db:"base_amount"`
	CarryingAmount  decimal.Decimal `db:"carrying_amount"`
	FxDifference    decimal.Decimal `db:"fx_difference"`
}
