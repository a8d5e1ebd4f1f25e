package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Posted   EntryStatus = "POSTED"
	Reversed EntryStatus = "REVERSED"
)

// JournalEntry is a balanced, date- and currency-stamped financial event. Entries are created
// already posted; after that only the reversal link and status change, through the repository.
type JournalEntry struct {
	EntryID         string        `json:"entryID"`
	EntryDate       time.Time     `json:"entryDate"`
	CurrencyCode    string        `json:"currencyCode"`
	Memo            string        `json:"memo"`
	Posted          bool          `json:"posted"`
	Status          EntryStatus   `json:"status"`
	SourceInvoiceID *string       `json:"sourceInvoiceID,omitempty"` // one-to-one with invoices.gl_journal_id
	SourcePaymentID *string       `json:"sourcePaymentID,omitempty"` // one-to-one with payments.gl_journal_id
	ReversalOfID    *string       `json:"reversalOfID,omitempty"`    // set on the mirror entry
	ReversedByID    *string       `json:"reversedByID,omitempty"`    // set on the original once reversed
	Lines           []JournalLine `json:"lines"`
	AuditFields
}

// IsReversal reports whether the entry mirrors another one.
func (e JournalEntry) IsReversal() bool {
	return e.ReversalOfID != nil
}

// IsReversed reports whether a reversal entry already points at this one.
func (e JournalEntry) IsReversed() bool {
	return e.ReversedByID != nil
}

// Totals sums the debit and credit columns.
func (e JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		debits = debits.Add(l.Debit)
		credits = credits.Add(l.Credit)
	}
	return debits, credits
}

// JournalLine belongs to exactly one entry and one account. Exactly one of Debit and Credit is
// non-zero, both in the entry's currency.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Memo        string          `json:"memo"`
}

// LineDraft is a line requested by a caller or a poster, before IDs and rounding are applied.
type LineDraft struct {
	AccountID string
	Debit     decimal.Decimal
	Credit    decimal.Decimal
	Memo      string
}

// EntryDraft describes a journal entry to be created.
type EntryDraft struct {
	EntryDate       time.Time
	CurrencyCode    string
	Memo            string
	PeriodID        *string
	SourceInvoiceID *string
	SourcePaymentID *string
	ReversalOfID    *string
	Lines           []LineDraft
}
