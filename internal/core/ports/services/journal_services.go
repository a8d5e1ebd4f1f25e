package services

import (
	"context"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// JournalReaderSvc defines read operations for journal entries.
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalWriterSvc defines the only ways an entry comes into existence.
type JournalWriterSvc interface {
	// CreateEntry validates, balances and posts a manual entry in its own unit of work.
	CreateEntry(ctx context.Context, draft domain.EntryDraft, actor string) (*domain.JournalEntry, error)

	// ReverseEntry posts the mirror image of an entry, dated now, and links both entries.
	ReverseEntry(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces.
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
