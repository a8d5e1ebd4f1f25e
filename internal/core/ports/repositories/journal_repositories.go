package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves an entry with its lines.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalLocker reads an entry while holding a row lock until the unit of work ends.
type JournalLocker interface {
	FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries. There is deliberately no update of
// amounts, accounts or dates.
type JournalWriter interface {
	// SaveEntry persists an entry and all its lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// MarkEntryReversed attaches the reversal link and flips the status to REVERSED. It returns
	// apperrors.ErrAlreadyReversed when a link is already present.
	MarkEntryReversed(ctx context.Context, entryID, reversedByID, actor string, at time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalLocker
	JournalWriter
}
