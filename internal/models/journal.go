package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

// JournalEntry is a row of journal_entries. Lines are loaded separately.
type JournalEntry struct {
	EntryID         string        `db:"entry_id"`
	EntryDate       time.Time     `db:"entry_date"`
	CurrencyCode    string        `db:"currency_code"`
	Memo            string        `db:"memo"`
	Status          JournalStatus `db:"status"`
	SourceInvoiceID *string       `db:"source_invoice_id"`
	SourcePaymentID *string       `db:"source_payment_id"`
	ReversalOfID    *string       `db:"reversal_of_id"`
	ReversedByID    *string       `db:"reversed_by_id"`
	AuditFields
}

// JournalLine is a row of journal_lines joined with the account code.
type JournalLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Memo        string          `db:"memo"`
}
