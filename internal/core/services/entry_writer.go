package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_ledger/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// entryWriter is the single place where journal entries are built and saved. Every entry it
// saves is balanced to the currency's minor unit.
type entryWriter struct {
	accountRepo portsrepo.AccountReader
}

func newEntryWriter(accountRepo portsrepo.AccountReader) *entryWriter {
	return &entryWriter{accountRepo: accountRepo}
}

func (w *entryWriter) post(ctx context.Context, tx portsrepo.TxRepositories, draft domain.EntryDraft, actor string, now time.Time) (*domain.JournalEntry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	currency := strings.ToUpper(draft.CurrencyCode)
	if len(currency) != 3 {
		return nil, fmt.Errorf("%w: currency code must be 3 letters", apperrors.ErrValidation)
	}
	if draft.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}

	lines := make([]domain.LineDraft, len(draft.Lines))
	accountIDs := make([]string, 0, len(draft.Lines))
	for i, l := range draft.Lines {
		l.Debit = accounting.Round(l.Debit, currency)
		l.Credit = accounting.Round(l.Credit, currency)
		if err := accounting.ValidateLine(l); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		lines[i] = l
		accountIDs = append(accountIDs, l.AccountID)
	}
	if err := accounting.ValidateEntryBalance(lines, currency); err != nil {
		return nil, err
	}

	accounts, err := w.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	entryID := uuid.NewString()
	entry := domain.JournalEntry{
		EntryID:         entryID,
		EntryDate:       domain.DateOnly(draft.EntryDate),
		CurrencyCode:    currency,
		Memo:            draft.Memo,
		Posted:          true,
		Status:          domain.Posted,
		SourceInvoiceID: draft.SourceInvoiceID,
		SourcePaymentID: draft.SourcePaymentID,
		ReversalOfID:    draft.ReversalOfID,
		Lines:           make([]domain.JournalLine, 0, len(lines)),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	for i, l := range lines {
		acc, ok := accounts[l.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, l.AccountID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, acc.Code)
		}
		entry.Lines = append(entry.Lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			EntryID:     entryID,
			LineNo:      i + 1,
			AccountID:   acc.AccountID,
			AccountCode: acc.Code,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Memo:        l.Memo,
		})
	}

	if err := tx.Journals.SaveEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}
	return &entry, nil
}

// sideLine places amount on the requested side, moving it to the other side when negative.
// Zero amounts produce no line.
func sideLine(lines []domain.LineDraft, accountID string, amount decimal.Decimal, debit bool, memo string) []domain.LineDraft {
	if amount.IsZero() {
		return lines
	}
	if amount.IsNegative() {
		amount = amount.Neg()
		debit = !debit
	}
	l := domain.LineDraft{AccountID: accountID, Memo: memo}
	if debit {
		l.Debit = amount
	} else {
		l.Credit = amount
	}
	return append(lines, l)
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
