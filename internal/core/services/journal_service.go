package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
)

// journalService provides manual entries, lookups and reversals.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalReader
	txManager   portsrepo.TransactionManager
	periodGate  portssvc.PeriodGateSvc
	writer      *entryWriter
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalClock overrides the clock used to date reversals.
func WithJournalClock(clock func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.clock = clock
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(
	accountRepo portsrepo.AccountReader,
	journalRepo portsrepo.JournalReader,
	txManager portsrepo.TransactionManager,
	periodGate portssvc.PeriodGateSvc,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo: journalRepo,
		txManager:   txManager,
		periodGate:  periodGate,
		writer:      newEntryWriter(accountRepo),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) GetEntry(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal entry %s: %w", entryID, err)
	}
	return entry, nil
}

// CreateEntry posts a manual entry. Source-document and reversal links are reserved for the
// posters and the reversal engine.
func (s *journalService) CreateEntry(ctx context.Context, draft domain.EntryDraft, actor string) (*domain.JournalEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	if draft.SourceInvoiceID != nil || draft.SourcePaymentID != nil || draft.ReversalOfID != nil {
		return nil, fmt.Errorf("%w: manual entries cannot link source documents or reversals", apperrors.ErrValidation)
	}
	if _, err := s.periodGate.ValidateTransactionDate(ctx, draft.EntryDate, draft.PeriodID); err != nil {
		return nil, err
	}

	var entry *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		var err error
		entry, err = s.writer.post(ctx, tx, draft, actor, s.Now())
		return err
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry", slog.String("actor", actor))
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry created",
		slog.String("journal_id", entry.EntryID),
		slog.String("actor", actor))
	return entry, nil
}

// ReverseEntry posts the mirror image of an entry dated at reversal time and links both entries.
// Reversing an invoice entry releases the invoice for re-posting; reversing a payment entry
// releases the payment and reopens the invoices it settled.
func (s *journalService) ReverseEntry(ctx context.Context, entryID string, actor string) (*domain.JournalEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	now := s.Now()
	if _, err := s.periodGate.ValidateTransactionDate(ctx, now, nil); err != nil {
		return nil, err
	}

	var reversal *domain.JournalEntry
	err := s.txManager.WithinTx(ctx, func(ctx context.Context, tx portsrepo.TxRepositories) error {
		original, err := tx.Journals.FindEntryByIDForUpdate(ctx, entryID)
		if err != nil {
			return fmt.Errorf("failed to load journal entry %s: %w", entryID, err)
		}
		if original.IsReversed() {
			return fmt.Errorf("%w: %s is reversed by %s", apperrors.ErrAlreadyReversed, entryID, *original.ReversedByID)
		}
		if original.IsReversal() {
			return fmt.Errorf("%w: %s is itself the reversal of %s", apperrors.ErrAlreadyReversed, entryID, *original.ReversalOfID)
		}

		if original.SourceInvoiceID != nil {
			settlements, err := tx.Invoices.FindSettlements(ctx, []string{*original.SourceInvoiceID})
			if err != nil {
				return fmt.Errorf("failed to check invoice settlements: %w", err)
			}
			if st, ok := settlements[*original.SourceInvoiceID]; ok && !st.Settled.IsZero() {
				return fmt.Errorf("%w: invoice %s has posted payments; reverse them first", apperrors.ErrConflict, *original.SourceInvoiceID)
			}
		}

		draft := domain.EntryDraft{
			EntryDate:    now,
			CurrencyCode: original.CurrencyCode,
			Memo:         "Reversal of: " + original.Memo,
			ReversalOfID: &original.EntryID,
			Lines:        make([]domain.LineDraft, len(original.Lines)),
		}
		for i, l := range original.Lines {
			draft.Lines[i] = domain.LineDraft{AccountID: l.AccountID, Debit: l.Credit, Credit: l.Debit, Memo: l.Memo}
		}

		reversal, err = s.writer.post(ctx, tx, draft, actor, now)
		if err != nil {
			return err
		}
		if err := tx.Journals.MarkEntryReversed(ctx, original.EntryID, reversal.EntryID, actor, now); err != nil {
			return fmt.Errorf("failed to link reversal: %w", err)
		}

		switch {
		case original.SourceInvoiceID != nil:
			if err := tx.Invoices.ClearInvoicePosting(ctx, *original.SourceInvoiceID, actor, now); err != nil {
				return fmt.Errorf("failed to release invoice: %w", err)
			}
		case original.SourcePaymentID != nil:
			payment, err := tx.Payments.FindPaymentByIDForUpdate(ctx, *original.SourcePaymentID)
			if err != nil {
				return fmt.Errorf("failed to load payment: %w", err)
			}
			if err := tx.Payments.ClearPaymentPosting(ctx, payment.PaymentID, actor, now); err != nil {
				return fmt.Errorf("failed to release payment: %w", err)
			}
			invoiceIDs := make([]string, 0, len(payment.Allocations))
			for _, a := range payment.Allocations {
				invoiceIDs = append(invoiceIDs, a.InvoiceID)
			}
			if _, err := refreshPaymentStatuses(ctx, tx, uniqueStrings(invoiceIDs), actor, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if apperrors.IsBenign(err) {
			s.LogInfo(ctx, "Journal entry already reversed", slog.String("journal_id", entryID))
		} else {
			s.LogError(ctx, err, "Failed to reverse journal entry", slog.String("journal_id", entryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("journal_id", entryID),
		slog.String("reversal_id", reversal.EntryID),
		slog.String("actor", actor))
	return reversal, nil
}
