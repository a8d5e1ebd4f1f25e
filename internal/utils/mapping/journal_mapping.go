package mapping

import (
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		EntryDate:       d.EntryDate,
		CurrencyCode:    d.CurrencyCode,
		Memo:            d.Memo,
		Status:          models.JournalStatus(d.Status),
		SourceInvoiceID: d.SourceInvoiceID,
		SourcePaymentID: d.SourcePaymentID,
		ReversalOfID:    d.ReversalOfID,
		ReversedByID:    d.ReversedByID,
		AuditFields:     models.AuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry.
// Stored entries are always posted.
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		EntryDate:       m.EntryDate,
		CurrencyCode:    m.CurrencyCode,
		Memo:            m.Memo,
		Posted:          true,
		Status:          domain.EntryStatus(m.Status),
		SourceInvoiceID: m.SourceInvoiceID,
		SourcePaymentID: m.SourcePaymentID,
		ReversalOfID:    m.ReversalOfID,
		ReversedByID:    m.ReversedByID,
		Lines:           ToDomainJournalLineSlice(lines),
		AuditFields:     domain.AuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		AccountCode: d.AccountCode,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Memo:        d.Memo,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		LineNo:      m.LineNo,
		AccountID:   m.AccountID,
		AccountCode: m.AccountCode,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Memo:        m.Memo,
	}
}

func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}
