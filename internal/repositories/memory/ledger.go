package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

func (r *repo) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	var (
		acc domain.Account
		ok  bool
	)
	r.read(func(st *state) { acc, ok = st.accounts[accountID] })
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountID, apperrors.ErrNotFound)
	}
	return &acc, nil
}

func (r *repo) FindAccountByCode(_ context.Context, code string) (*domain.Account, error) {
	var found *domain.Account
	r.read(func(st *state) {
		for _, a := range st.accounts {
			if a.Code == code {
				a := a
				found = &a
				return
			}
		}
	})
	if found == nil {
		return nil, fmt.Errorf("account code %s: %w", code, apperrors.ErrNotFound)
	}
	return found, nil
}

func (r *repo) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	out := make(map[string]domain.Account, len(accountIDs))
	r.read(func(st *state) {
		for _, id := range accountIDs {
			if a, ok := st.accounts[id]; ok {
				out[id] = a
			}
		}
	})
	return out, nil
}

func (r *repo) ListAccounts(_ context.Context) ([]domain.Account, error) {
	var out []domain.Account
	r.read(func(st *state) {
		for _, a := range st.accounts {
			out = append(out, a)
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r *repo) FindEntryByID(_ context.Context, entryID string) (*domain.JournalEntry, error) {
	var (
		e  domain.JournalEntry
		ok bool
	)
	r.read(func(st *state) {
		e, ok = st.journals[entryID]
		e = cloneEntry(e)
	})
	if !ok {
		return nil, fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
	}
	return &e, nil
}

// FindEntryByIDForUpdate needs no row lock here: units of work are already serialized.
func (r *repo) FindEntryByIDForUpdate(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	return r.FindEntryByID(ctx, entryID)
}

func (r *repo) SaveEntry(_ context.Context, entry domain.JournalEntry) error {
	return r.write(func(st *state) error {
		if _, ok := st.journals[entry.EntryID]; ok {
			return fmt.Errorf("journal entry %s: %w", entry.EntryID, apperrors.ErrDuplicate)
		}
		for _, e := range st.journals {
			if e.Status != domain.Posted {
				continue
			}
			if sameRef(e.SourceInvoiceID, entry.SourceInvoiceID) || sameRef(e.SourcePaymentID, entry.SourcePaymentID) {
				return fmt.Errorf("%w: source document already has entry %s", apperrors.ErrAlreadyPosted, e.EntryID)
			}
		}
		st.journals[entry.EntryID] = cloneEntry(entry)
		return nil
	})
}

func (r *repo) MarkEntryReversed(_ context.Context, entryID, reversedByID, actor string, at time.Time) error {
	return r.write(func(st *state) error {
		e, ok := st.journals[entryID]
		if !ok {
			return fmt.Errorf("journal entry %s: %w", entryID, apperrors.ErrNotFound)
		}
		if e.ReversedByID != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrAlreadyReversed, entryID)
		}
		e.ReversedByID = &reversedByID
		e.Status = domain.Reversed
		e.LastUpdatedAt, e.LastUpdatedBy = at, actor
		st.journals[entryID] = e
		return nil
	})
}

func (r *repo) GetAccountActivity(_ context.Context, from, to time.Time) ([]domain.AccountActivity, error) {
	from, to = domain.DateOnly(from), domain.DateOnly(to)
	sums := map[string]*domain.AccountActivity{}
	r.read(func(st *state) {
		for _, e := range st.journals {
			d := domain.DateOnly(e.EntryDate)
			if !e.Posted || d.Before(from) || d.After(to) {
				continue
			}
			for _, l := range e.Lines {
				a, ok := sums[l.AccountID]
				if !ok {
					a = &domain.AccountActivity{AccountID: l.AccountID, Debit: decimal.Zero, Credit: decimal.Zero}
					sums[l.AccountID] = a
				}
				a.Debit = a.Debit.Add(l.Debit)
				a.Credit = a.Credit.Add(l.Credit)
			}
		}
	})
	out := make([]domain.AccountActivity, 0, len(sums))
	for _, a := range sums {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

func (r *repo) FindExchangeRate(_ context.Context, from, to string, on time.Time, rateType domain.RateType) (*domain.ExchangeRate, error) {
	var direct, inverse *domain.ExchangeRate
	day := domain.DateOnly(on)
	r.read(func(st *state) {
		for i := range st.rates {
			rate := st.rates[i]
			if rate.RateType != rateType || domain.DateOnly(rate.DateEffective).After(day) {
				continue
			}
			switch {
			case rate.FromCurrency == from && rate.ToCurrency == to:
				if direct == nil || rate.DateEffective.After(direct.DateEffective) {
					direct = &rate
				}
			case rate.FromCurrency == to && rate.ToCurrency == from:
				if inverse == nil || rate.DateEffective.After(inverse.DateEffective) {
					inverse = &rate
				}
			}
		}
	})
	if direct != nil {
		return direct, nil
	}
	if inverse != nil && inverse.Rate.IsPositive() {
		inv := *inverse
		inv.FromCurrency, inv.ToCurrency = from, to
		inv.Rate = decimal.NewFromInt(1).DivRound(inverse.Rate, 12)
		return &inv, nil
	}
	return nil, fmt.Errorf("%s rate %s->%s on %s: %w", rateType, from, to, day.Format(time.DateOnly), apperrors.ErrNotFound)
}

func (r *repo) FindPeriodByID(_ context.Context, periodID string) (*domain.FiscalPeriod, error) {
	var (
		p  domain.FiscalPeriod
		ok bool
	)
	r.read(func(st *state) { p, ok = st.periods[periodID] })
	if !ok {
		return nil, fmt.Errorf("fiscal period %s: %w", periodID, apperrors.ErrNotFound)
	}
	return &p, nil
}

func (r *repo) FindPeriodsByDate(_ context.Context, date time.Time) ([]domain.FiscalPeriod, error) {
	var out []domain.FiscalPeriod
	r.read(func(st *state) {
		for _, p := range st.periods {
			if p.Contains(date) {
				out = append(out, p)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func sameRef(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}
