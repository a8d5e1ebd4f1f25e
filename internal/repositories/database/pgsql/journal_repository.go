package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/models"
	"github.com/SscSPs/settlement_ledger/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Partial unique indexes that keep a document linked to at most one posted entry.
const (
	uqEntrySourceInvoice = "uq_journal_entries_source_invoice"
	uqEntrySourcePayment = "uq_journal_entries_source_payment"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const entryColumns = `entry_id, entry_date, currency_code, memo, status,
	source_invoice_id, source_payment_id, reversal_of_id, reversed_by_id,
	created_at, created_by, last_updated_at, last_updated_by`

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, entryID, "")
}

// FindEntryByIDForUpdate locks the entry row until the surrounding transaction ends.
func (r *PgxJournalRepository) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.findEntry(ctx, entryID, " FOR UPDATE")
}

func (r *PgxJournalRepository) findEntry(ctx context.Context, entryID, lock string) (*domain.JournalEntry, error) {
	rows, err := r.db().Query(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1`+lock, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying journal entry %s: %w", entryID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.JournalEntry])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning journal entry %s: %w", entryID, err)
	}

	lines, err := r.findLines(ctx, entryID)
	if err != nil {
		return nil, err
	}
	entry := mapping.ToDomainJournalEntry(m, lines)
	return &entry, nil
}

func (r *PgxJournalRepository) findLines(ctx context.Context, entryID string) ([]models.JournalLine, error) {
	query := `
		SELECT l.line_id, l.entry_id, l.line_no, l.account_id, a.code AS account_code,
			l.debit, l.credit, l.memo
		FROM journal_lines l
		JOIN accounts a ON a.account_id = l.account_id
		WHERE l.entry_id = $1
		ORDER BY l.line_no`
	rows, err := r.db().Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("querying lines of journal entry %s: %w", entryID, err)
	}
	lines, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.JournalLine])
	if err != nil {
		return nil, fmt.Errorf("scanning lines of journal entry %s: %w", entryID, err)
	}
	return lines, nil
}

// SaveEntry inserts the entry and batches its lines. A second posted entry for the same source
// document violates a partial unique index and surfaces as apperrors.ErrAlreadyPosted.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	_, err := r.db().Exec(ctx, `
		INSERT INTO journal_entries (
			entry_id, entry_date, currency_code, memo, status,
			source_invoice_id, source_payment_id, reversal_of_id, reversed_by_id,
			created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		m.EntryID, m.EntryDate, m.CurrencyCode, m.Memo, m.Status,
		m.SourceInvoiceID, m.SourcePaymentID, m.ReversalOfID, m.ReversedByID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	switch {
	case isUniqueViolation(err, uqEntrySourceInvoice), isUniqueViolation(err, uqEntrySourcePayment):
		return fmt.Errorf("%w: journal entry %s", apperrors.ErrAlreadyPosted, m.EntryID)
	case isUniqueViolation(err, ""):
		return fmt.Errorf("journal entry %s: %w", m.EntryID, apperrors.ErrDuplicate)
	case err != nil:
		return fmt.Errorf("inserting journal entry %s: %w", m.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, line := range entry.Lines {
		l := mapping.ToModelJournalLine(line)
		batch.Queue(`
			INSERT INTO journal_lines (line_id, entry_id, line_no, account_id, debit, credit, memo)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			l.LineID, m.EntryID, l.LineNo, l.AccountID, l.Debit, l.Credit, l.Memo)
	}
	br := r.db().SendBatch(ctx, batch)
	for range entry.Lines {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("inserting lines of journal entry %s: %w", m.EntryID, err)
		}
	}
	return br.Close()
}

// MarkEntryReversed links the original entry to its reversal.
func (r *PgxJournalRepository) MarkEntryReversed(ctx context.Context, entryID, reversedByID, actor string, at time.Time) error {
	tag, err := r.db().Exec(ctx, `
		UPDATE journal_entries
		SET status = $2, reversed_by_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND reversed_by_id IS NULL`,
		entryID, domain.Reversed, reversedByID, at, actor)
	if err != nil {
		return fmt.Errorf("marking journal entry %s reversed: %w", entryID, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	if _, err := r.findEntry(ctx, entryID, ""); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, entryID)
}
